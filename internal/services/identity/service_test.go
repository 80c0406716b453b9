package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gamiempire/sovereign/internal/dependencies/mocks"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/storage/memory"
	"github.com/gamiempire/sovereign/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	// Token suffixes; each issued session consumes one.
	s.random.QueueString("aaaaaaaaa", "bbbbbbbbb", "ccccccccc", "ddddddddd", "eeeeeeeee")
	logger := testutil.NopLogger()
	auditor := audit.New(s.storage, s.clock, logger)
	s.service = New(s.storage, auditor, s.clock, s.random, DefaultConfig(), logger)
	s.ctx = context.Background()
}

// CreateAccount tests

func (s *ServiceSuite) TestCreateAccountSucceeds() {
	session, err := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("alice", session.Username)
	s.False(session.Admin)
	s.Equal(float64(model.StarterWealth), session.Wealth)
	s.Equal([]string{model.StarterAsset}, session.Assets)
}

func (s *ServiceSuite) TestCreateAccountPersistsAccount() {
	_, _ = s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	account, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", account.Username)
	s.NotEmpty(account.CredentialDigest)
	s.NotEqual("password123", account.CredentialDigest) // Should be hashed
}

func (s *ServiceSuite) TestCreateAccountFailsOnPasswordMismatch() {
	_, err := s.service.CreateAccount(s.ctx, "alice", "password123", "different")
	s.ErrorIs(err, model.ErrPasswordMismatch)
}

func (s *ServiceSuite) TestCreateAccountFailsOnShortUsername() {
	_, err := s.service.CreateAccount(s.ctx, "abc", "password123", "password123")
	s.ErrorIs(err, model.ErrUsernameTooShort)
}

func (s *ServiceSuite) TestCreateAccountFailsOnShortPassword() {
	_, err := s.service.CreateAccount(s.ctx, "alice", "short", "short")
	s.ErrorIs(err, model.ErrPasswordTooShort)
}

func (s *ServiceSuite) TestCreateAccountFailsIfUsernameExists() {
	_, _ = s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(time.Second)
	_, err := s.service.CreateAccount(s.ctx, "alice", "different1", "different1")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestCreateAccountAuditsFailure() {
	_, _ = s.service.CreateAccount(s.ctx, "abc", "password123", "password123")

	events, err := s.storage.ListAuditEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditUserCreateFailed, events[0].Kind)
	s.Equal("abc", events[0].Username)
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	_, _ = s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(time.Second)
	session, err := s.service.Authenticate(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.Equal("alice", session.Username)
	s.False(session.Admin)
	s.Equal(float64(model.StarterWealth), session.Wealth)
}

func (s *ServiceSuite) TestAuthenticateFailsWithWrongPassword() {
	_, _ = s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	_, err := s.service.Authenticate(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestAuthenticateFailsWithUnknownUser() {
	_, err := s.service.Authenticate(s.ctx, "nobody", "password123")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestAuthenticateUpdatesLastLogin() {
	_, _ = s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(time.Hour)
	_, err := s.service.Authenticate(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), account.LastLoginAt)
}

// Root bypass tests

func (s *ServiceSuite) TestRootBypassGrantsAdminWithAnyPassword() {
	session, err := s.service.Authenticate(s.ctx, "asifking", "whatever")
	s.Require().NoError(err)

	s.True(session.Admin)
	s.Equal("asifking", session.Username)
	s.Equal(float64(RootWealth), session.Wealth)
	s.Contains(session.Assets, "ghost_access")
}

func (s *ServiceSuite) TestRootBypassIsCaseInsensitive() {
	session, err := s.service.Authenticate(s.ctx, "AsIfKiNg", "")
	s.Require().NoError(err)
	s.True(session.Admin)
}

func (s *ServiceSuite) TestRootBypassWinsOverStoredAccount() {
	// Even if someone registers the root name, the bypass is checked first.
	_, _ = s.service.CreateAccount(s.ctx, "asifking", "password123", "password123")

	s.clock.Advance(time.Second)
	session, err := s.service.Authenticate(s.ctx, "asifking", "not-the-password")
	s.Require().NoError(err)
	s.True(session.Admin)
	s.Equal(float64(RootWealth), session.Wealth)
}

func (s *ServiceSuite) TestRootBypassAuditsAdminGrant() {
	_, _ = s.service.Authenticate(s.ctx, "asifking", "")

	events, err := s.storage.ListAuditEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditAdminGranted, events[0].Kind)
}

// Session lifecycle tests

func (s *ServiceSuite) TestValidateSucceeds() {
	session, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	validated, err := s.service.Validate(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Token, validated.Token)
}

func (s *ServiceSuite) TestValidateFailsForUnknownToken() {
	_, err := s.service.Validate("token_0_zzzzzzzzz")
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestReauthenticationReplacesPreviousSession() {
	first, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(time.Second)
	second, err := s.service.Authenticate(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.NotEqual(first.Token, second.Token)

	_, err = s.service.Validate(first.Token)
	s.ErrorIs(err, model.ErrInvalidSession)

	_, err = s.service.Validate(second.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestLogoutDestroysSession() {
	session, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.service.Logout(s.ctx, session.Token)

	_, err := s.service.Validate(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
	s.Equal(0, s.service.ActiveSessions())
}

func (s *ServiceSuite) TestTokenFormat() {
	session, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.Regexp(`^token_\d+_[a-z0-9]*$`, session.Token)
}

// Ghost session tests

func (s *ServiceSuite) TestGhostSessionDoesNotDisplaceTargetSession() {
	target, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(time.Second)
	admin, err := s.service.Authenticate(s.ctx, "asifking", "")
	s.Require().NoError(err)

	origin, err := s.service.Detach(admin.Token)
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)

	s.clock.Advance(time.Second)
	ghost := s.service.IssueGhostSession(origin, account)

	s.True(ghost.IsGhost())
	s.Equal("alice", ghost.Username)
	s.False(ghost.Admin)
	s.Equal(origin, ghost.Origin)

	// The target's own session is untouched.
	_, err = s.service.Validate(target.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestDetachAndReattachRoundTrip() {
	session, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	detached, err := s.service.Detach(session.Token)
	s.Require().NoError(err)
	s.Equal(0, s.service.ActiveSessions())

	_, err = s.service.Validate(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)

	s.service.Reattach(detached)
	validated, err := s.service.Validate(session.Token)
	s.Require().NoError(err)
	s.Equal("alice", validated.Username)
}

// Inactivity sweep tests

func (s *ServiceSuite) TestSweepInactiveEvictsIdleSessions() {
	session, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(6 * time.Minute)
	evicted := s.service.SweepInactive(5 * time.Minute)

	s.Require().Len(evicted, 1)
	s.Equal("alice", evicted[0].Username)

	_, err := s.service.Validate(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestSweepInactiveSparesTouchedSessions() {
	session, _ := s.service.CreateAccount(s.ctx, "alice", "password123", "password123")

	s.clock.Advance(4 * time.Minute)
	s.service.Touch(session.Token)

	s.clock.Advance(4 * time.Minute)
	evicted := s.service.SweepInactive(5 * time.Minute)

	s.Empty(evicted)
	_, err := s.service.Validate(session.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestActiveUsersCountsDistinctUsernames() {
	_, _ = s.service.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.clock.Advance(time.Second)
	_, _ = s.service.CreateAccount(s.ctx, "bobby", "password123", "password123")

	s.Equal(2, s.service.ActiveSessions())
	s.Equal(2, s.service.ActiveUsers())
}
