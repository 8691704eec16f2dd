package queue

import (
	"context"
	"sync"
)

// MockQueueService is a configurable test double for QueueService.
type MockQueueService struct {
	mu sync.Mutex

	JoinFunc  func(ctx context.Context, userID, bracketID string) (*JoinResult, error)
	LeaveFunc func(ctx context.Context, userID, bracketID string) (*LeaveResult, error)

	JoinCalls  []MembershipCall
	LeaveCalls []MembershipCall
}

type MembershipCall struct {
	UserID    string
	BracketID string
}

var _ QueueService = (*MockQueueService)(nil)

func NewMock() *MockQueueService {
	return &MockQueueService{}
}

func (m *MockQueueService) Join(ctx context.Context, userID, bracketID string) (*JoinResult, error) {
	m.mu.Lock()
	m.JoinCalls = append(m.JoinCalls, MembershipCall{UserID: userID, BracketID: bracketID})
	m.mu.Unlock()
	if m.JoinFunc != nil {
		return m.JoinFunc(ctx, userID, bracketID)
	}
	return &JoinResult{EntryID: "mock-entry", PlayerID: "mock-player", BracketID: bracketID}, nil
}

func (m *MockQueueService) Leave(ctx context.Context, userID, bracketID string) (*LeaveResult, error) {
	m.mu.Lock()
	m.LeaveCalls = append(m.LeaveCalls, MembershipCall{UserID: userID, BracketID: bracketID})
	m.mu.Unlock()
	if m.LeaveFunc != nil {
		return m.LeaveFunc(ctx, userID, bracketID)
	}
	return &LeaveResult{Deactivated: 1}, nil
}
