package model

import "time"

// Snapshot is the "last known good" state slot written by background
// reconciliation. Each write overwrites the previous snapshot.
type Snapshot struct {
	// Settings holds only entries whose current value differs from the
	// default, keyed by setting key.
	Settings       map[string]any `json:"settings"`
	Entities       []*WorldEntity `json:"entities"`
	ActiveSessions int            `json:"active_sessions"`
	SavedAt        time.Time      `json:"saved_at"`
}
