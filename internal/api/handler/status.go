package handler

import (
	"net/http"

	"github.com/gamiempire/sovereign/internal/api/response"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/services/monitor"
	"github.com/gamiempire/sovereign/internal/services/override"
	"github.com/gamiempire/sovereign/internal/services/settings"
	"github.com/gamiempire/sovereign/internal/services/theme"
)

// StatusHandler reports platform-wide state
type StatusHandler struct {
	identityService *identity.Service
	registry        *settings.Registry
	engine          *economy.Engine
	overrideService *override.Service
	themeState      *theme.State
	monitor         *monitor.Monitor
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(identityService *identity.Service, registry *settings.Registry, engine *economy.Engine, overrideService *override.Service, themeState *theme.State, mon *monitor.Monitor) *StatusHandler {
	return &StatusHandler{
		identityService: identityService,
		registry:        registry,
		engine:          engine,
		overrideService: overrideService,
		themeState:      themeState,
		monitor:         mon,
	}
}

// Status handles GET /api/v1/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := response.StatusResponse{
		ActiveSessions: h.identityService.ActiveSessions(),
		ActiveUsers:    h.identityService.ActiveUsers(),
		UptimeSeconds:  h.monitor.Uptime().Seconds(),
		ActiveSettings: h.registry.ActiveCount(),
		TotalSettings:  h.registry.Total(),
		GhostEnabled:   h.overrideService.GhostEnabled(),
		AssetsFrozen:   h.engine.Frozen(),
		Economy:        h.engine.Aggregate(),
		Theme:          h.themeState.Values(),
	}
	if sample, ok := h.monitor.LatestSample(); ok {
		resp.Performance = &sample
	}

	response.JSON(w, http.StatusOK, resp)
}
