package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gamiempire/sovereign/internal/model"
)

// IntegrationSuite exercises the fully wired application through the
// same service surface the API handlers use.
type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.app.MockRandom.QueueString("aaaaaaaaa", "bbbbbbbbb", "ccccccccc", "ddddddddd", "eeeeeeeee")
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TestSignupThenLoginRoundTrip() {
	_, err := s.app.IdentityService.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Second)
	session, err := s.app.IdentityService.Authenticate(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.Equal(float64(model.StarterWealth), session.Wealth)
	s.Equal([]string{model.StarterAsset}, session.Assets)
}

func (s *IntegrationSuite) TestAdminSettingFreezesEconomyAcrossServices() {
	session, err := s.app.IdentityService.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	// admin category entries affect intercept, ghost access and freeze
	updated := s.app.Registry.Update(s.ctx, "asifking", "admin_setting_3", true)
	s.Require().True(updated)
	s.Equal(1, s.app.Registry.ActiveCount())
	s.True(s.app.Engine.Frozen())

	_, err = s.app.Engine.Apply(s.ctx, model.TxnCrowRental, 1, "", session)
	s.ErrorIs(err, model.ErrAssetsFrozen)

	// Turning it back off releases the freeze; the ghost toggle in the
	// same effects list lands on its off state as well.
	s.app.Registry.Update(s.ctx, "asifking", "admin_setting_3", false)
	s.False(s.app.Engine.Frozen())
	s.False(s.app.OverrideService.GhostEnabled())
}

func (s *IntegrationSuite) TestNatureSettingReachesPricing() {
	session, err := s.app.IdentityService.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	// Sliders above index 50 route numeric values into the engine params.
	s.app.Registry.Update(s.ctx, "asifking", "nature_setting_60", float64(20))
	s.Equal(float64(20), s.app.Engine.Params().CrowRentalRate)

	receipt, err := s.app.Engine.Apply(s.ctx, model.TxnCrowRental, 1, "", session)
	s.Require().NoError(err)
	s.Equal(float64(20), receipt.Gross)
}

func (s *IntegrationSuite) TestVisualSettingDrivesTheme() {
	s.app.Registry.Update(s.ctx, "asifking", "visual_setting_1", "#000000")
	s.Equal("#000000", s.app.ThemeState.Values().PrimaryColor)
}

func (s *IntegrationSuite) TestGhostChainEndToEnd() {
	_, err := s.app.IdentityService.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Second)
	admin, err := s.app.IdentityService.Authenticate(s.ctx, "asifking", "anything")
	s.Require().NoError(err)
	s.Require().True(admin.Admin)

	s.app.MockClock.Advance(time.Second)
	ghost, err := s.app.OverrideService.GhostAccess(s.ctx, admin, "alice")
	s.Require().NoError(err)
	s.Equal("alice", ghost.Username)

	// While ghosting, transactions land on the target's account.
	receipt, err := s.app.Engine.Apply(s.ctx, model.TxnCrowRental, 1, "crow_001", ghost)
	s.Require().NoError(err)
	s.Equal(model.StarterWealth+13.5, receipt.Wealth)

	account, err := s.app.Storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.StarterWealth+13.5, account.Wealth)

	s.app.MockClock.Advance(time.Second)
	restored, err := s.app.OverrideService.Restore(s.ctx, ghost)
	s.Require().NoError(err)
	s.Equal(admin.Token, restored.Token)
}

func (s *IntegrationSuite) TestInactivitySweepThroughMonitor() {
	_, err := s.app.IdentityService.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)

	s.app.MockClock.Advance(6 * time.Minute)
	s.app.Monitor.SweepInactiveSessions(s.ctx)

	s.Equal(0, s.app.IdentityService.ActiveSessions())

	events, err := s.app.AuditLogger.Tail(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditUserInactive, events[0].Kind)
}

func (s *IntegrationSuite) TestSnapshotCapturesWiredState() {
	_, err := s.app.IdentityService.CreateAccount(s.ctx, "alice", "password123", "password123")
	s.Require().NoError(err)
	s.app.Registry.Update(s.ctx, "asifking", "shop_setting_60", float64(25))

	s.app.Monitor.PersistSnapshot(s.ctx)

	snapshot, err := s.app.Storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, snapshot.ActiveSessions)
	s.Len(snapshot.Entities, 3)
	s.Equal(float64(25), snapshot.Settings["shop_setting_60"])
}

func (s *IntegrationSuite) TestMemoryIsDefaultStorage() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.Storage)
	s.Equal(500, app.Registry.Total())
}
