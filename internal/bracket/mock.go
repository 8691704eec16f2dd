package bracket

import (
	"sync"
)

// MockRegistry is a mock implementation of the Registry interface for
// testing. It serves brackets from an in-memory map unless a spy
// function is provided.
type MockRegistry struct {
	mu sync.Mutex

	GetFunc    func(bracketID string) (*Bracket, error)
	ListFunc   func() ([]Bracket, error)
	UpsertFunc func(b *Bracket) error

	GetCalls []string
	brackets map[string]*Bracket
}

// NewMock creates a new mock instance.
func NewMock() *MockRegistry {
	return &MockRegistry{
		brackets: make(map[string]*Bracket),
	}
}

// Add registers a bracket served by the default Get/List behavior.
func (m *MockRegistry) Add(b *Bracket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brackets[b.ID] = b
}

func (m *MockRegistry) Get(bracketID string) (*Bracket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, bracketID)
	if m.GetFunc != nil {
		return m.GetFunc(bracketID)
	}
	return m.brackets[bracketID], nil
}

func (m *MockRegistry) List() ([]Bracket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	list := []Bracket{}
	for _, b := range m.brackets {
		list = append(list, *b)
	}
	return list, nil
}

func (m *MockRegistry) Upsert(b *Bracket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertFunc != nil {
		return m.UpsertFunc(b)
	}
	m.brackets[b.ID] = b
	return nil
}
