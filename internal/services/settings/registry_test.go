package settings

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

// recordingHandler captures dispatched effects for assertions.
type recordingHandler struct {
	entries []*model.SettingEntry
	values  []any
}

func (h *recordingHandler) ApplySettingEffect(_ context.Context, entry *model.SettingEntry, value any) {
	h.entries = append(h.entries, entry)
	h.values = append(h.values, value)
}

type RegistrySuite struct {
	suite.Suite
	storage  *memory.Storage
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.registry = New(audit.New(s.storage, clk, logger), logger)
	s.ctx = context.Background()
}

// Catalog generation tests

func (s *RegistrySuite) TestGeneratesFiveHundredEntries() {
	s.Equal(500, s.registry.Total())
}

func (s *RegistrySuite) TestAllEntriesStartAtDefault() {
	s.Equal(0, s.registry.ActiveCount())
}

func (s *RegistrySuite) TestNatureEntrySplit() {
	toggle := s.registry.Lookup("nature_setting_50")
	s.Require().NotNil(toggle)
	s.Equal(model.KindToggle, toggle.Kind)
	s.Equal(false, toggle.Default)

	slider := s.registry.Lookup("nature_setting_51")
	s.Require().NotNil(slider)
	s.Equal(model.KindSlider, slider.Kind)
	s.Equal(float64(50), slider.Default)
}

func (s *RegistrySuite) TestPhysicsEntrySplit() {
	toggle := s.registry.Lookup("physics_setting_25")
	s.Require().NotNil(toggle)
	s.Equal(model.KindToggle, toggle.Kind)
	s.Equal(true, toggle.Default)

	slider := s.registry.Lookup("physics_setting_26")
	s.Require().NotNil(slider)
	s.Equal(model.KindSlider, slider.Kind)
	s.Equal(float64(0), slider.Default)
}

func (s *RegistrySuite) TestVisualEntriesUseColorControls() {
	color := s.registry.Lookup("visual_setting_1")
	s.Require().NotNil(color)
	s.Equal(model.KindColor, color.Kind)
	s.Equal("#FFFFFF", color.Default)
}

func (s *RegistrySuite) TestEntryCarriesMenuPathAndAffects() {
	entry := s.registry.Lookup("admin_setting_1")
	s.Require().NotNil(entry)
	s.Equal("sovereign_menu > admin_protocols > control_panel", entry.Path)
	s.Equal([]string{"user_intercept", "ghost_access", "asset_freeze"}, entry.Affects)
}

// Lookup tests

func (s *RegistrySuite) TestLookupIsCaseInsensitive() {
	entry := s.registry.Lookup("NATURE_SETTING_7")
	s.Require().NotNil(entry)
	s.Equal("nature_setting_7", entry.Key)
}

func (s *RegistrySuite) TestLookupSubstringReturnsFirstInRegistrationOrder() {
	// "shop_setting_1" matches shop_setting_1, _10..._19 and _100; the
	// first registered wins.
	entry := s.registry.Lookup("shop_setting_1")
	s.Require().NotNil(entry)
	s.Equal("shop_setting_1", entry.Key)
}

func (s *RegistrySuite) TestLookupUnknownReturnsNil() {
	s.Nil(s.registry.Lookup("no_such_setting"))
}

func (s *RegistrySuite) TestLookupEmptyReturnsNil() {
	s.Nil(s.registry.Lookup(""))
}

// Update tests

func (s *RegistrySuite) TestUpdateUnknownKeyReturnsFalse() {
	updated := s.registry.Update(s.ctx, "asifking", "no_such_setting", true)
	s.False(updated)

	events, err := s.storage.ListAuditEvents(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(events) // Unknown keys are not audited
}

func (s *RegistrySuite) TestUpdateStoresValueAndRaisesActiveCount() {
	updated := s.registry.Update(s.ctx, "asifking", "admin_setting_3", true)
	s.True(updated)

	s.Equal(1, s.registry.ActiveCount())

	entry := s.registry.Lookup("admin_setting_3")
	s.Require().NotNil(entry)
	s.Equal(true, entry.Current)
}

func (s *RegistrySuite) TestUpdateBackToDefaultClearsActiveCount() {
	s.registry.Update(s.ctx, "asifking", "nature_setting_60", float64(75))
	s.Equal(1, s.registry.ActiveCount())

	s.registry.Update(s.ctx, "asifking", "nature_setting_60", float64(50))
	s.Equal(0, s.registry.ActiveCount())
}

func (s *RegistrySuite) TestUpdateDispatchesToRoutedHandler() {
	handler := &recordingHandler{}
	s.registry.Route(model.CategoryNature, handler)

	s.registry.Update(s.ctx, "asifking", "nature_setting_60", float64(42))

	s.Require().Len(handler.entries, 1)
	s.Equal("nature_setting_60", handler.entries[0].Key)
	s.Equal(float64(42), handler.values[0])
}

func (s *RegistrySuite) TestUpdateWithoutHandlerStillStoresAndAudits() {
	updated := s.registry.Update(s.ctx, "asifking", "visual_setting_1", "#000000")
	s.True(updated)

	events, err := s.storage.ListAuditEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.AuditSettingUpdated, events[0].Kind)
	s.Equal("visual_setting_1", events[0].Payload["setting"])
}

func (s *RegistrySuite) TestOverridesReturnsOnlyNonDefaultEntries() {
	s.registry.Update(s.ctx, "asifking", "admin_setting_3", true)
	s.registry.Update(s.ctx, "asifking", "shop_setting_60", float64(25))

	overrides := s.registry.Overrides()
	s.Len(overrides, 2)
	s.Equal(true, overrides["admin_setting_3"])
	s.Equal(float64(25), overrides["shop_setting_60"])
}

// Value normalization tests

func (s *RegistrySuite) TestUpdateNormalizesIntegerSliderValues() {
	// nature_setting_60 is a slider defaulting to float 50; an integer
	// carrying the same number must still count as default.
	s.Require().True(s.registry.Update(s.ctx, "asifking", "nature_setting_60", 50))
	s.Equal(0, s.registry.ActiveCount())

	s.Require().True(s.registry.Update(s.ctx, "asifking", "nature_setting_60", 20))
	s.Equal(1, s.registry.ActiveCount())
	s.Equal(float64(20), s.registry.Lookup("nature_setting_60").Current)
}

func (s *RegistrySuite) TestActiveCountToleratesNonComparableValues() {
	s.Require().True(s.registry.Update(s.ctx, "asifking", "visual_setting_1", map[string]any{"r": 255}))
	s.NotPanics(func() {
		s.Equal(1, s.registry.ActiveCount())
	})
}
