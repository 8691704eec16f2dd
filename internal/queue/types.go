package queue

import (
	"github.com/mauv0809/urban-bracket/internal/admission"
	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/metrics"
	"github.com/mauv0809/urban-bracket/internal/pubsub"
)

// Manager is the queue membership manager.
type Manager struct {
	store     arena.ArenaStore
	admission *admission.Controller
	metrics   metrics.Metrics
	pubsub    pubsub.PubSubClient
	// atomicJoin routes entry creation through the conditional insert,
	// closing the concurrent-join race at the store layer.
	atomicJoin bool
}

// JoinResult confirms a new queue membership.
type JoinResult struct {
	EntryID   string `json:"entry_id"`
	PlayerID  string `json:"player_id"`
	BracketID string `json:"bracket_id"`
}

// LeaveResult reports how many entries a leave transitioned.
type LeaveResult struct {
	Deactivated int64 `json:"deactivated"`
}
