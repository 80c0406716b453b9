package factory

import (
	"time"

	"github.com/gamiempire/sovereign/internal/dependencies/mocks"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/services/monitor"
	"github.com/gamiempire/sovereign/internal/storage/memory"
	"github.com/gamiempire/sovereign/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, identity.DefaultConfig(), monitor.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
