package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gamiempire/sovereign/internal/api/middleware"
	"github.com/gamiempire/sovereign/internal/api/request"
	"github.com/gamiempire/sovereign/internal/api/response"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/identity"
)

// AccountHandler handles account and session endpoints
type AccountHandler struct {
	errorReporter
	identityService *identity.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(identityService *identity.Service, auditLogger *audit.Logger) *AccountHandler {
	return &AccountHandler{
		errorReporter:   errorReporter{audit: auditLogger},
		identityService: identityService,
	}
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		h.fail(w, r, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		h.fail(w, r, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.identityService.CreateAccount(r.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Login handles POST /api/v1/sessions
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		h.fail(w, r, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		h.fail(w, r, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.identityService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Logout handles DELETE /api/v1/sessions
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.identityService.Logout(r.Context(), session.Token)
	response.NoContent(w)
}

// Me handles GET /api/v1/sessions/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}
