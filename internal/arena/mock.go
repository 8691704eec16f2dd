package arena

import (
	"sync"
)

// MockStore is a mock implementation of the ArenaStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertUserFunc              func(userID, name string) (bool, error)
	GetUserFunc                 func(userID string) (*User, error)
	ListUsersFunc               func() ([]User, error)
	PlayersForUserFunc          func(userID string) ([]Player, error)
	EntriesForUserFunc          func(userID string) ([]QueueEntry, error)
	FindPlayerFunc              func(userID, bracketID string) (*Player, error)
	CreatePlayerFunc            func(userID, bracketID string, startRating float64) (*Player, error)
	ActiveEntriesFunc           func(userID, bracketID string) ([]QueueEntry, error)
	CreateEntryFunc             func(userID, playerID, bracketID string) (*QueueEntry, error)
	CreateEntryUnlessActiveFunc func(userID, playerID, bracketID string) (*QueueEntry, bool, error)
	DeactivateEntriesFunc       func(userID, bracketID string) (int64, error)
	ClearFunc                   func()
	ClearUserFunc               func(userID string)

	// Call records
	UpsertUserCalls   []UpsertUserCall
	GetUserCalls      []string
	FindPlayerCalls   []PairCall
	CreatePlayerCalls []CreatePlayerCall
	CreateEntryCalls  []CreateEntryCall
	DeactivateCalls   []PairCall
	ClearUserCalls    []string
}

// UpsertUserCall holds the arguments for a call to UpsertUser.
type UpsertUserCall struct {
	UserID string
	Name   string
}

// PairCall holds a (user, bracket) argument pair.
type PairCall struct {
	UserID    string
	BracketID string
}

// CreatePlayerCall holds the arguments for a call to CreatePlayer.
type CreatePlayerCall struct {
	UserID      string
	BracketID   string
	StartRating float64
}

// CreateEntryCall holds the arguments for a call to CreateEntry or
// CreateEntryUnlessActive.
type CreateEntryCall struct {
	UserID    string
	PlayerID  string
	BracketID string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertUser(userID, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertUserCalls = append(m.UpsertUserCalls, UpsertUserCall{UserID: userID, Name: name})
	if m.UpsertUserFunc != nil {
		return m.UpsertUserFunc(userID, name)
	}
	return true, nil
}

func (m *MockStore) GetUser(userID string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetUserCalls = append(m.GetUserCalls, userID)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) ListUsers() ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc()
	}
	return []User{}, nil
}

func (m *MockStore) PlayersForUser(userID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayersForUserFunc != nil {
		return m.PlayersForUserFunc(userID)
	}
	return []Player{}, nil
}

func (m *MockStore) EntriesForUser(userID string) ([]QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EntriesForUserFunc != nil {
		return m.EntriesForUserFunc(userID)
	}
	return []QueueEntry{}, nil
}

func (m *MockStore) FindPlayer(userID, bracketID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindPlayerCalls = append(m.FindPlayerCalls, PairCall{UserID: userID, BracketID: bracketID})
	if m.FindPlayerFunc != nil {
		return m.FindPlayerFunc(userID, bracketID)
	}
	return nil, nil
}

func (m *MockStore) CreatePlayer(userID, bracketID string, startRating float64) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, CreatePlayerCall{UserID: userID, BracketID: bracketID, StartRating: startRating})
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(userID, bracketID, startRating)
	}
	return &Player{ID: "mock-player", UserID: userID, BracketID: bracketID, Ratings: []float64{startRating}}, nil
}

func (m *MockStore) ActiveEntries(userID, bracketID string) ([]QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ActiveEntriesFunc != nil {
		return m.ActiveEntriesFunc(userID, bracketID)
	}
	return []QueueEntry{}, nil
}

func (m *MockStore) CreateEntry(userID, playerID, bracketID string) (*QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateEntryCalls = append(m.CreateEntryCalls, CreateEntryCall{UserID: userID, PlayerID: playerID, BracketID: bracketID})
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(userID, playerID, bracketID)
	}
	return &QueueEntry{ID: "mock-entry", UserID: userID, PlayerID: playerID, BracketID: bracketID, Active: true}, nil
}

func (m *MockStore) CreateEntryUnlessActive(userID, playerID, bracketID string) (*QueueEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateEntryCalls = append(m.CreateEntryCalls, CreateEntryCall{UserID: userID, PlayerID: playerID, BracketID: bracketID})
	if m.CreateEntryUnlessActiveFunc != nil {
		return m.CreateEntryUnlessActiveFunc(userID, playerID, bracketID)
	}
	return &QueueEntry{ID: "mock-entry", UserID: userID, PlayerID: playerID, BracketID: bracketID, Active: true}, true, nil
}

func (m *MockStore) DeactivateEntries(userID, bracketID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeactivateCalls = append(m.DeactivateCalls, PairCall{UserID: userID, BracketID: bracketID})
	if m.DeactivateEntriesFunc != nil {
		return m.DeactivateEntriesFunc(userID, bracketID)
	}
	return 0, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearUserCalls = append(m.ClearUserCalls, userID)
	if m.ClearUserFunc != nil {
		m.ClearUserFunc(userID)
	}
}
