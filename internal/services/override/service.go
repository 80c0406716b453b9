package override

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/storage"
)

// Service layers privileged session substitution ("ghost access") on
// the identity manager. Entering a ghost session detaches the admin's
// own session and embeds it in the ghost session, so each override
// chain has exactly one active session; Restore reverses the swap.
type Service struct {
	storage  storage.Storage
	identity *identity.Service
	engine   *economy.Engine
	audit    *audit.Logger
	logger   *slog.Logger

	mu            sync.RWMutex
	ghostEnabled  bool
	userIntercept bool
}

// New creates a new override Service. Ghost access starts enabled.
func New(store storage.Storage, ids *identity.Service, engine *economy.Engine, auditor *audit.Logger, logger *slog.Logger) *Service {
	return &Service{
		storage:      store,
		identity:     ids,
		engine:       engine,
		audit:        auditor,
		logger:       logger,
		ghostEnabled: true,
	}
}

// GhostAccess substitutes the admin's session for one impersonating
// the target user. Both identities are audited.
func (s *Service) GhostAccess(ctx context.Context, session *identity.Session, targetUsername string) (*identity.Session, error) {
	ghost, err := s.ghostAccess(ctx, session, targetUsername)
	if err != nil {
		username := ""
		if session != nil {
			username = session.Username
		}
		s.audit.Record(ctx, model.AuditGhostFailed, username, map[string]any{
			"target": targetUsername,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.audit.Record(ctx, model.AuditGhostExecuted, session.Username, map[string]any{
		"original_user": session.Username,
		"target_user":   targetUsername,
		"access_type":   "ghost_override",
	})
	return ghost, nil
}

func (s *Service) ghostAccess(ctx context.Context, session *identity.Session, targetUsername string) (*identity.Session, error) {
	if session == nil || !session.Admin {
		return nil, model.ErrAdminRequired
	}
	if !s.GhostEnabled() {
		return nil, model.ErrGhostDisabled
	}

	target, err := s.storage.GetAccount(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	origin, err := s.identity.Detach(session.Token)
	if err != nil {
		return nil, err
	}

	return s.identity.IssueGhostSession(origin, target), nil
}

// Restore returns from a ghost session to the originating admin
// session. Fails with an invalid-state error for non-ghost sessions.
func (s *Service) Restore(ctx context.Context, session *identity.Session) (*identity.Session, error) {
	if session == nil || !session.IsGhost() {
		return nil, model.ErrNotGhostSession
	}

	origin := session.Origin

	// Drop the ghost session and reactivate its origin.
	if _, err := s.identity.Detach(session.Token); err != nil {
		return nil, err
	}
	s.identity.Reattach(origin)

	s.audit.Record(ctx, model.AuditGhostRestored, origin.Username, map[string]any{
		"ghosted_user": session.Username,
	})
	return origin, nil
}

// GhostEnabled reports whether ghost access is currently permitted.
func (s *Service) GhostEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ghostEnabled
}

// UserIntercept reports the admin user-intercept flag.
func (s *Service) UserIntercept() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userIntercept
}

// ApplySettingEffect implements the admin-category effect handler:
// ghost access and user intercept toggles, and the global asset freeze
// which drives the engine.
func (s *Service) ApplySettingEffect(_ context.Context, entry *model.SettingEntry, value any) {
	enabled, ok := value.(bool)
	if !ok {
		return
	}

	for _, effect := range entry.Affects {
		switch effect {
		case "ghost_access":
			s.mu.Lock()
			s.ghostEnabled = enabled
			s.mu.Unlock()
		case "user_intercept":
			s.mu.Lock()
			s.userIntercept = enabled
			s.mu.Unlock()
		case "asset_freeze":
			s.engine.SetFrozen(enabled)
		}
	}
}
