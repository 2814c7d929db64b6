package factory

import (
	"time"

	"github.com/mcoot/nimgame-go/internal/dependencies/mocks"
	"github.com/mcoot/nimgame-go/internal/services/directory"
	"github.com/mcoot/nimgame-go/internal/services/strategy"
	"github.com/mcoot/nimgame-go/internal/storage/memory"
	"github.com/mcoot/nimgame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The computer opponent plays optimally and finished matches are kept.
func NewTestApp() *TestApp {
	return NewTestAppWithRetention(directory.RetentionKeep)
}

// NewTestAppWithRetention is NewTestApp with a chosen retention policy
func NewTestAppWithRetention(retention directory.RetentionPolicy) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, strategy.NewOptimal(), retention, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
