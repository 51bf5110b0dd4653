package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/workshop-payments/internal/ledger"
)

// MockPusher is a mock implementation of Pusher for testing.
type MockPusher struct {
	PushFunc      func(ctx context.Context, store *ledger.Store) (string, error)
	LastTabs      []Tab
	PushCallCount int
	mu            sync.Mutex
}

// NewMockPusher creates a new mock pusher.
func NewMockPusher() *MockPusher {
	return &MockPusher{}
}

// Push implements the Pusher interface.
func (m *MockPusher) Push(ctx context.Context, store *ledger.Store) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PushCallCount++
	m.LastTabs = WorkbookTabs(store)

	if m.PushFunc != nil {
		return m.PushFunc(ctx, store)
	}
	return "mock-spreadsheet", nil
}

// Reset clears all recorded calls.
func (m *MockPusher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PushCallCount = 0
	m.LastTabs = nil
}
