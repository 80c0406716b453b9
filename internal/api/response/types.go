package response

import (
	"time"

	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/services/monitor"
	"github.com/gamiempire/sovereign/internal/services/theme"
)

// SessionResponse describes an issued session
type SessionResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Admin     bool      `json:"admin"`
	Ghost     bool      `json:"ghost"`
	Wealth    float64   `json:"wealth"`
	Assets    []string  `json:"assets"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionFromModel converts a session to its API representation
func SessionFromModel(s *identity.Session) SessionResponse {
	wealth, assets := s.Balance()
	return SessionResponse{
		Token:     s.Token,
		Username:  s.Username,
		Admin:     s.Admin,
		Ghost:     s.IsGhost(),
		Wealth:    wealth,
		Assets:    assets,
		CreatedAt: s.CreatedAt,
	}
}

// SettingResponse describes one settings-registry entry
type SettingResponse struct {
	Key      string   `json:"key"`
	Category string   `json:"category"`
	Kind     string   `json:"kind"`
	Default  any      `json:"default"`
	Current  any      `json:"current"`
	Path     string   `json:"path"`
	Affects  []string `json:"affects"`
}

// SettingFromModel converts a settings entry to its API representation
func SettingFromModel(e *model.SettingEntry) SettingResponse {
	return SettingResponse{
		Key:      e.Key,
		Category: string(e.Category),
		Kind:     string(e.Kind),
		Default:  e.Default,
		Current:  e.Current,
		Path:     e.Path,
		Affects:  e.Affects,
	}
}

// UpdateSettingResponse reports the outcome of a setting update
type UpdateSettingResponse struct {
	Key     string `json:"key"`
	Updated bool   `json:"updated"`
}

// EntityResponse describes one world entity with its action surface
type EntityResponse struct {
	Entity  model.WorldEntity `json:"entity"`
	Actions []string          `json:"actions"`
}

// EntityFromModel converts a world entity to its API representation
func EntityFromModel(e *model.WorldEntity) EntityResponse {
	return EntityResponse{
		Entity:  *e,
		Actions: e.AvailableActions(),
	}
}

// EntitiesResponse lists the world population
type EntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
}

// TransactionsResponse lists transaction records, newest first
type TransactionsResponse struct {
	Transactions []*model.TransactionRecord `json:"transactions"`
}

// AuditResponse lists audit events, newest first
type AuditResponse struct {
	Events []*model.AuditEvent `json:"events"`
}

// StatusResponse is the platform status report
type StatusResponse struct {
	ActiveSessions int                        `json:"active_sessions"`
	ActiveUsers    int                        `json:"active_users"`
	UptimeSeconds  float64                    `json:"uptime_seconds"`
	ActiveSettings int                        `json:"active_settings"`
	TotalSettings  int                        `json:"total_settings"`
	GhostEnabled   bool                       `json:"ghost_enabled"`
	AssetsFrozen   bool                       `json:"assets_frozen"`
	Economy        economy.Aggregates         `json:"economy"`
	Theme          theme.Values               `json:"theme"`
	Performance    *monitor.PerformanceSample `json:"performance,omitempty"`
}
