package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gamiempire/sovereign/internal/api/middleware"
	"github.com/gamiempire/sovereign/internal/api/request"
	"github.com/gamiempire/sovereign/internal/api/response"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/override"
)

const defaultAuditLimit = 50

// AdminHandler handles ghost access and audit endpoints
type AdminHandler struct {
	errorReporter
	overrideService *override.Service
	auditLogger     *audit.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(overrideService *override.Service, auditLogger *audit.Logger) *AdminHandler {
	return &AdminHandler{
		errorReporter:   errorReporter{audit: auditLogger},
		overrideService: overrideService,
		auditLogger:     auditLogger,
	}
}

// GhostAccess handles POST /api/v1/ghost
func (h *AdminHandler) GhostAccess(w http.ResponseWriter, r *http.Request) {
	var req request.GhostAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetUsername == "" {
		h.fail(w, r, NewInvalidRequestError("target_username is required"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	ghost, err := h.overrideService.GhostAccess(r.Context(), session, req.TargetUsername)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(ghost))
}

// Restore handles POST /api/v1/ghost/restore
func (h *AdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	origin, err := h.overrideService.Restore(r.Context(), session)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(origin))
}

// Audit handles GET /api/v1/audit
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.fail(w, r, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.auditLogger.Tail(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuditResponse{Events: events})
}
