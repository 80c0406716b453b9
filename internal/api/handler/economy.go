package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gamiempire/sovereign/internal/api/middleware"
	"github.com/gamiempire/sovereign/internal/api/request"
	"github.com/gamiempire/sovereign/internal/api/response"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/storage"
)

const defaultTransactionLimit = 50

// EconomyHandler handles transaction, wealth and world entity endpoints
type EconomyHandler struct {
	errorReporter
	engine *economy.Engine
	store  storage.Storage
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(engine *economy.Engine, store storage.Storage, auditLogger *audit.Logger) *EconomyHandler {
	return &EconomyHandler{
		errorReporter: errorReporter{audit: auditLogger},
		engine:        engine,
		store:         store,
	}
}

// Transact handles POST /api/v1/transactions
func (h *EconomyHandler) Transact(w http.ResponseWriter, r *http.Request) {
	var req request.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Type == "" {
		h.fail(w, r, NewInvalidRequestError("type is required"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	receipt, err := h.engine.Apply(r.Context(), model.TransactionType(req.Type), req.BaseAmount, req.EntityID, session)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, receipt)
}

// ListTransactions handles GET /api/v1/transactions
func (h *EconomyHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultTransactionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.fail(w, r, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	session := middleware.MustGetSession(r.Context())
	records, err := h.store.ListTransactions(r.Context(), session.Username, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TransactionsResponse{Transactions: records})
}

// Wealth handles GET /api/v1/wealth
func (h *EconomyHandler) Wealth(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, h.engine.Report(session))
}

// ListEntities handles GET /api/v1/entities
func (h *EconomyHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	entities := h.engine.Entities()
	resp := response.EntitiesResponse{Entities: make([]response.EntityResponse, 0, len(entities))}
	for _, entity := range entities {
		resp.Entities = append(resp.Entities, response.EntityFromModel(entity))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Interact handles POST /api/v1/entities/{id}/{action}
func (h *EconomyHandler) Interact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityID := vars["id"]
	action := vars["action"]

	session := middleware.MustGetSession(r.Context())
	result, err := h.engine.Interact(r.Context(), session, entityID, action)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
