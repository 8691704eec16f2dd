package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	queueJoins         int
	joinRejections     int
	queueLeaves        int
	entriesDeactivated float64
	joinDurations      []float64
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		joinDurations: make([]float64, 0),
	}
}

func (m *Mock) IncQueueJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueJoins++
}

func (m *Mock) IncJoinRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinRejections++
}

func (m *Mock) IncQueueLeaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueLeaves++
}

func (m *Mock) AddEntriesDeactivated(count float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entriesDeactivated += count
}

func (m *Mock) ObserveJoinDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinDurations = append(m.joinDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// QueueJoins returns the number of times IncQueueJoins was called.
func (m *Mock) QueueJoins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueJoins
}

// JoinRejections returns the number of times IncJoinRejections was called.
func (m *Mock) JoinRejections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinRejections
}

// QueueLeaves returns the number of times IncQueueLeaves was called.
func (m *Mock) QueueLeaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueLeaves
}

// EntriesDeactivated returns the summed deactivation count.
func (m *Mock) EntriesDeactivated() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entriesDeactivated
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
