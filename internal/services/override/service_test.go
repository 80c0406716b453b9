package override

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gamiempire/sovereign/internal/dependencies/mocks"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/storage/memory"
	"github.com/gamiempire/sovereign/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	identity *identity.Service
	engine   *economy.Engine
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	rnd.QueueString("aaaaaaaaa", "bbbbbbbbb", "ccccccccc", "ddddddddd")
	logger := testutil.NopLogger()
	auditor := audit.New(s.storage, s.clock, logger)
	s.identity = identity.New(s.storage, auditor, s.clock, rnd, identity.DefaultConfig(), logger)
	s.engine = economy.New(s.storage, auditor, s.clock, logger)
	s.service = New(s.storage, s.identity, s.engine, auditor, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) adminSession() *identity.Session {
	session, err := s.identity.Authenticate(s.ctx, "asifking", "")
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return session
}

func (s *ServiceSuite) targetAccount(username string) {
	_, err := s.identity.CreateAccount(s.ctx, username, "password123", "password123")
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
}

// GhostAccess tests

func (s *ServiceSuite) TestGhostAccessSucceeds() {
	s.targetAccount("alice")
	admin := s.adminSession()

	ghost, err := s.service.GhostAccess(s.ctx, admin, "alice")
	s.Require().NoError(err)

	s.True(ghost.IsGhost())
	s.Equal("alice", ghost.Username)
	s.False(ghost.Admin)
	s.Equal(float64(model.StarterWealth), ghost.Wealth)
	s.Equal(admin, ghost.Origin)
}

func (s *ServiceSuite) TestGhostAccessDetachesAdminSession() {
	s.targetAccount("alice")
	admin := s.adminSession()

	_, err := s.service.GhostAccess(s.ctx, admin, "alice")
	s.Require().NoError(err)

	// The admin token is no longer usable while ghosting.
	_, err = s.identity.Validate(admin.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestGhostAccessRequiresAdmin() {
	s.targetAccount("alice")
	s.targetAccount("bobby")

	session, err := s.identity.Authenticate(s.ctx, "bobby", "password123")
	s.Require().NoError(err)

	_, err = s.service.GhostAccess(s.ctx, session, "alice")
	s.ErrorIs(err, model.ErrAdminRequired)
}

func (s *ServiceSuite) TestGhostAccessRequiresNonNilSession() {
	_, err := s.service.GhostAccess(s.ctx, nil, "alice")
	s.ErrorIs(err, model.ErrAdminRequired)
}

func (s *ServiceSuite) TestGhostAccessFailsWhenDisabled() {
	s.targetAccount("alice")
	admin := s.adminSession()

	entry := &model.SettingEntry{Category: model.CategoryAdmin, Affects: []string{"ghost_access"}}
	s.service.ApplySettingEffect(s.ctx, entry, false)

	_, err := s.service.GhostAccess(s.ctx, admin, "alice")
	s.ErrorIs(err, model.ErrGhostDisabled)

	// The admin session must survive a failed override.
	_, err = s.identity.Validate(admin.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestGhostAccessFailsForUnknownTarget() {
	admin := s.adminSession()

	_, err := s.service.GhostAccess(s.ctx, admin, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestGhostAccessAuditsBothIdentities() {
	s.targetAccount("alice")
	admin := s.adminSession()

	_, err := s.service.GhostAccess(s.ctx, admin, "alice")
	s.Require().NoError(err)

	events, err := s.storage.ListAuditEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditGhostExecuted, events[0].Kind)
	s.Equal("asifking", events[0].Payload["original_user"])
	s.Equal("alice", events[0].Payload["target_user"])
	s.Equal("ghost_override", events[0].Payload["access_type"])
}

func (s *ServiceSuite) TestGhostAccessFailureIsAudited() {
	admin := s.adminSession()

	_, _ = s.service.GhostAccess(s.ctx, admin, "nobody")

	events, err := s.storage.ListAuditEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditGhostFailed, events[0].Kind)
}

// Restore tests

func (s *ServiceSuite) TestRestoreReturnsToAdminSession() {
	s.targetAccount("alice")
	admin := s.adminSession()

	ghost, err := s.service.GhostAccess(s.ctx, admin, "alice")
	s.Require().NoError(err)
	s.clock.Advance(time.Second)

	origin, err := s.service.Restore(s.ctx, ghost)
	s.Require().NoError(err)

	s.Equal(admin.Token, origin.Token)
	s.True(origin.Admin)

	// Ghost token is dead, admin token is live again.
	_, err = s.identity.Validate(ghost.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
	_, err = s.identity.Validate(admin.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestRestoreFailsForNonGhostSession() {
	admin := s.adminSession()

	_, err := s.service.Restore(s.ctx, admin)
	s.ErrorIs(err, model.ErrNotGhostSession)
}

func (s *ServiceSuite) TestRestoreIsAudited() {
	s.targetAccount("alice")
	admin := s.adminSession()

	ghost, err := s.service.GhostAccess(s.ctx, admin, "alice")
	s.Require().NoError(err)
	s.clock.Advance(time.Second)

	_, err = s.service.Restore(s.ctx, ghost)
	s.Require().NoError(err)

	events, err := s.storage.ListAuditEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditGhostRestored, events[0].Kind)
	s.Equal("asifking", events[0].Username)
}

// Setting effect tests

func (s *ServiceSuite) TestAssetFreezeEffectDrivesEngine() {
	entry := &model.SettingEntry{Category: model.CategoryAdmin, Affects: []string{"asset_freeze"}}

	s.service.ApplySettingEffect(s.ctx, entry, true)
	s.True(s.engine.Frozen())

	s.service.ApplySettingEffect(s.ctx, entry, false)
	s.False(s.engine.Frozen())
}

func (s *ServiceSuite) TestUserInterceptToggle() {
	entry := &model.SettingEntry{Category: model.CategoryAdmin, Affects: []string{"user_intercept"}}

	s.False(s.service.UserIntercept())
	s.service.ApplySettingEffect(s.ctx, entry, true)
	s.True(s.service.UserIntercept())
}

func (s *ServiceSuite) TestNonBoolValueIsIgnored() {
	entry := &model.SettingEntry{Category: model.CategoryAdmin, Affects: []string{"ghost_access"}}

	s.service.ApplySettingEffect(s.ctx, entry, float64(42))
	s.True(s.service.GhostEnabled())
}
