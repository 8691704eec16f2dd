package notifier

import (
	"sync"

	"github.com/mauv0809/urban-bracket/internal/pubsub"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	SendQueueJoinedFunc func(event pubsub.QueueEvent, dryRun bool) error
	SendQueueLeftFunc   func(event pubsub.QueueEvent, dryRun bool) error

	QueueJoinedCalls []pubsub.QueueEvent
	QueueLeftCalls   []pubsub.QueueEvent
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendQueueJoined(event pubsub.QueueEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueJoinedCalls = append(m.QueueJoinedCalls, event)
	if m.SendQueueJoinedFunc != nil {
		return m.SendQueueJoinedFunc(event, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendQueueLeft(event pubsub.QueueEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueLeftCalls = append(m.QueueLeftCalls, event)
	if m.SendQueueLeftFunc != nil {
		return m.SendQueueLeftFunc(event, dryRun)
	}
	return nil
}
