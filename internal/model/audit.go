package model

import "time"

// Audit event kinds. Every privileged or mutating operation, and every
// failure surfaced at the API edge, writes one of these.
const (
	AuditUserCreated       = "USER_CREATION_SUCCESS"
	AuditUserCreateFailed  = "USER_CREATION_FAILED"
	AuditAuthSuccess       = "USER_AUTHENTICATION_SUCCESS"
	AuditAuthFailed        = "USER_AUTHENTICATION_FAILED"
	AuditAdminGranted      = "ADMIN_ACCESS_GRANTED"
	AuditSessionEnded      = "SESSION_ENDED"
	AuditUserInactive      = "USER_INACTIVE"
	AuditGhostExecuted     = "GHOST_ACCESS_EXECUTED"
	AuditGhostFailed       = "GHOST_ACCESS_FAILED"
	AuditGhostRestored     = "GHOST_ACCESS_RESTORED"
	AuditSettingUpdated    = "SETTING_UPDATED"
	AuditTransaction       = "ECONOMIC_TRANSACTION"
	AuditTransactionFailed = "TRANSACTION_FAILED"
	AuditEconomicMonitor   = "ECONOMIC_MONITOR"
	AuditAutoSaveFailed    = "AUTO_SAVE_FAILED"
	AuditRequestFailed     = "REQUEST_FAILED"
)

// AuditEvent is one append-only record of a system occurrence.
type AuditEvent struct {
	Kind      string         `json:"event_kind"`
	Payload   map[string]any `json:"payload,omitempty"`
	Username  string         `json:"username"`
	Timestamp time.Time      `json:"timestamp"`
}
