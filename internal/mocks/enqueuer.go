package mocks

import (
	"context"
	"sync"

	"github.com/maheshrc27/marketing-planner/internal/queue"
)

// MockEnqueuer records post due reminders instead of sending them to Redis.
type MockEnqueuer struct {
	mu       sync.Mutex
	Payloads []queue.PostDuePayload
	Err      error
}

func (m *MockEnqueuer) EnqueuePostDue(ctx context.Context, payload queue.PostDuePayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Payloads = append(m.Payloads, payload)
	return nil
}

func (m *MockEnqueuer) PostIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, p := range m.Payloads {
		ids = append(ids, p.PostID)
	}
	return ids
}
