package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamiempire/sovereign/internal/api/middleware"
	"github.com/gamiempire/sovereign/internal/api/request"
	"github.com/gamiempire/sovereign/internal/api/response"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/settings"
)

// SettingsHandler handles settings-registry endpoints
type SettingsHandler struct {
	errorReporter
	registry *settings.Registry
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(registry *settings.Registry, auditLogger *audit.Logger) *SettingsHandler {
	return &SettingsHandler{
		errorReporter: errorReporter{audit: auditLogger},
		registry:      registry,
	}
}

// Lookup handles GET /api/v1/settings?q=
func (h *SettingsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.fail(w, r, NewInvalidRequestError("q is required"))
		return
	}

	entry := h.registry.Lookup(query)
	if entry == nil {
		h.fail(w, r, model.ErrSettingNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingFromModel(entry))
}

// Update handles PUT /api/v1/settings/{key}
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req request.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	if !h.registry.Update(r.Context(), session.Username, key, req.Value) {
		h.fail(w, r, model.ErrSettingNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.UpdateSettingResponse{Key: key, Updated: true})
}
