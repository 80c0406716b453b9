package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamiempire/sovereign/internal/dependencies/clock"
	"github.com/gamiempire/sovereign/internal/dependencies/random"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/storage"
)

const (
	// tokenSuffixLength is the random component of a session token
	tokenSuffixLength   = 9
	tokenSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	minUsernameLength = 4
	minPasswordLength = 8
)

// RootWealth is the wealth granted to a root bypass session.
const RootWealth = 9999999

// rootAssets is the administrative asset set of a root session.
var rootAssets = []string{"admin_privileges", "ghost_access", "system_control"}

// Session is a live authenticated working context, distinct from the
// underlying Account. Origin is non-nil exactly when this is a ghost
// session; it holds the detached originating admin session.
type Session struct {
	Token        string
	Username     string
	Admin        bool
	Wealth       float64
	Assets       []string
	Origin       *Session
	CreatedAt    time.Time
	LastActivity time.Time

	// stateMu guards Wealth and Assets once the session is live: the
	// economy engine credits wealth while request handlers read it.
	stateMu sync.Mutex
}

// IsGhost reports whether this session impersonates another identity.
func (s *Session) IsGhost() bool {
	return s.Origin != nil
}

// Credit adds net to the session's wealth snapshot and returns the
// new balance.
func (s *Session) Credit(net float64) float64 {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.Wealth += net
	return s.Wealth
}

// SyncWealth overwrites the wealth snapshot with the stored balance.
func (s *Session) SyncWealth(wealth float64) {
	s.stateMu.Lock()
	s.Wealth = wealth
	s.stateMu.Unlock()
}

// Balance returns the wealth snapshot and a copy of the asset list.
func (s *Session) Balance() (float64, []string) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.Wealth, append([]string(nil), s.Assets...)
}

// Config holds configuration for the identity service
type Config struct {
	// RootUsername bypasses credential checks entirely (case-insensitive)
	RootUsername string
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		RootUsername: "asifking",
	}
}

// Service manages accounts, sessions and tokens
type Service struct {
	storage storage.Storage
	audit   *audit.Logger
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu         sync.RWMutex
	sessions   map[string]*Session
	userTokens map[string]string
}

// New creates a new identity Service
func New(store storage.Storage, auditor *audit.Logger, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.RootUsername == "" {
		cfg.RootUsername = DefaultConfig().RootUsername
	}
	return &Service{
		storage:    store,
		audit:      auditor,
		clock:      clk,
		random:     rnd,
		logger:     logger,
		cfg:        cfg,
		sessions:   make(map[string]*Session),
		userTokens: make(map[string]string),
	}
}

// CreateAccount registers a new account and returns a fresh session.
// The outcome is audited unconditionally, including every failure path.
func (s *Service) CreateAccount(ctx context.Context, username, password, confirmPassword string) (*Session, error) {
	session, err := s.createAccount(ctx, username, password, confirmPassword)
	if err != nil {
		s.audit.Record(ctx, model.AuditUserCreateFailed, username, map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	s.audit.Record(ctx, model.AuditUserCreated, username, nil)
	return session, nil
}

func (s *Service) createAccount(ctx context.Context, username, password, confirmPassword string) (*Session, error) {
	if password != confirmPassword {
		return nil, model.ErrPasswordMismatch
	}
	if len(username) < minUsernameLength {
		return nil, model.ErrUsernameTooShort
	}
	if len(password) < minPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	_, err := s.storage.GetAccount(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing credential: %w", err)
	}

	now := s.clock.Now()
	account := &model.Account{
		Username:         username,
		CredentialDigest: string(digest),
		Wealth:           model.StarterWealth,
		Assets:           []string{model.StarterAsset},
		CreatedAt:        now,
		LastLoginAt:      now,
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.issueSession(account.Username, account.Wealth, account.Assets, false), nil
}

// Authenticate verifies credentials and returns a session. The root
// username bypass is absolute and checked before any account lookup.
// Re-authentication replaces the user's previous session.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	if strings.EqualFold(username, s.cfg.RootUsername) {
		session := s.issueSession(s.cfg.RootUsername, RootWealth, rootAssets, true)
		s.audit.Record(ctx, model.AuditAdminGranted, s.cfg.RootUsername, nil)
		return session, nil
	}

	session, err := s.authenticate(ctx, username, password)
	if err != nil {
		s.audit.Record(ctx, model.AuditAuthFailed, username, map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	s.audit.Record(ctx, model.AuditAuthSuccess, username, nil)
	return session, nil
}

func (s *Service) authenticate(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.storage.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.CredentialDigest), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	account.LastLoginAt = s.clock.Now()
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.issueSession(account.Username, account.Wealth, account.Assets, false), nil
}

// GenerateToken produces an opaque token unique within the process:
// a monotonic time component with a random suffix.
func (s *Service) GenerateToken() string {
	return fmt.Sprintf("token_%d_%s",
		s.clock.Now().UnixNano(),
		s.random.String(tokenSuffixLength, tokenSuffixAlphabet))
}

// Validate returns the session for a token, or ErrInvalidSession.
func (s *Service) Validate(token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrInvalidSession
	}
	return session, nil
}

// Touch records activity on a session so the inactivity sweep spares it.
func (s *Service) Touch(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[token]; ok {
		session.LastActivity = s.clock.Now()
	}
}

// Logout destroys a session.
func (s *Service) Logout(ctx context.Context, token string) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	if ok {
		delete(s.sessions, token)
		if s.userTokens[session.Username] == token {
			delete(s.userTokens, session.Username)
		}
	}
	s.mu.Unlock()

	if ok {
		s.audit.Record(ctx, model.AuditSessionEnded, session.Username, nil)
	}
}

// Detach removes a session from the active set without ending it,
// returning it so the caller can embed it in an override chain.
func (s *Service) Detach(token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrInvalidSession
	}
	delete(s.sessions, token)
	if s.userTokens[session.Username] == token {
		delete(s.userTokens, session.Username)
	}
	return session, nil
}

// Reattach returns a previously detached session to the active set.
func (s *Service) Reattach(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.LastActivity = s.clock.Now()
	s.register(session)
}

// IssueGhostSession creates an active session impersonating target,
// carrying the detached origin session for later restoration.
func (s *Service) IssueGhostSession(origin *Session, target *model.Account) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:        s.GenerateToken(),
		Username:     target.Username,
		Admin:        false,
		Wealth:       target.Wealth,
		Assets:       append([]string(nil), target.Assets...),
		Origin:       origin,
		CreatedAt:    now,
		LastActivity: now,
	}

	// A ghost session belongs to the admin's login chain, so it must not
	// displace the target user's own session.
	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// SweepInactive evicts sessions idle beyond threshold and returns them.
func (s *Service) SweepInactive(threshold time.Duration) []*Session {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []*Session
	for token, session := range s.sessions {
		if now.Sub(session.LastActivity) > threshold {
			delete(s.sessions, token)
			if s.userTokens[session.Username] == token {
				delete(s.userTokens, session.Username)
			}
			evicted = append(evicted, session)
		}
	}
	return evicted
}

// ActiveSessions returns the number of live sessions.
func (s *Service) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ActiveUsers returns the number of distinct users with a live session.
func (s *Service) ActiveUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make(map[string]struct{}, len(s.sessions))
	for _, session := range s.sessions {
		users[session.Username] = struct{}{}
	}
	return len(users)
}

// issueSession creates and registers a fresh session for username.
func (s *Service) issueSession(username string, wealth float64, assets []string, admin bool) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:        s.GenerateToken(),
		Username:     username,
		Admin:        admin,
		Wealth:       wealth,
		Assets:       append([]string(nil), assets...),
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.register(session)
	s.mu.Unlock()

	return session
}

// register stores the session, replacing any previous session for the
// same username. Caller holds s.mu.
func (s *Service) register(session *Session) {
	if prev, ok := s.userTokens[session.Username]; ok {
		delete(s.sessions, prev)
	}
	s.sessions[session.Token] = session
	s.userTokens[session.Username] = session.Token
}
