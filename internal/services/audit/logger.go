package audit

import (
	"context"
	"log/slog"

	"github.com/gamiempire/sovereign/internal/dependencies/clock"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/storage"
)

// Logger writes append-only audit events through storage. A backend
// failure is reported through slog and not propagated: an audit outage
// must never fail the operation being audited.
type Logger struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new audit Logger
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Logger {
	return &Logger{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Record appends one audit event. Username may be empty for events with
// no acting user (pre-auth failures, background tasks).
func (l *Logger) Record(ctx context.Context, kind, username string, payload map[string]any) {
	event := &model.AuditEvent{
		Kind:      kind,
		Payload:   payload,
		Username:  username,
		Timestamp: l.clock.Now(),
	}

	if err := l.storage.AppendAuditEvent(ctx, event); err != nil {
		l.logger.Warn("audit event dropped by storage backend",
			slog.String("kind", kind),
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}
}

// Tail returns the most recent events, newest first.
func (l *Logger) Tail(ctx context.Context, limit int) ([]*model.AuditEvent, error) {
	return l.storage.ListAuditEvents(ctx, limit)
}
