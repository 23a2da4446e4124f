package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/betstack/betstack/internal/dependencies/mocks"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockGateway *mocks.MockGateway
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockGateway := mocks.NewMockGateway()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockGateway, auth.DefaultConfig(), logger)

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockGateway: mockGateway,
	}
}
