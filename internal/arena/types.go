package arena

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the arena.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// User is a registered account. Created by profile upsert, referenced
// but never mutated by the queue core.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Created int64  `json:"created"`
}

// Player is a user's participation record within one bracket. Ratings
// is append-only and starts with the bracket's start rating.
type Player struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	BracketID string    `json:"bracket"`
	Ratings   []float64 `json:"ratings"`
	Created   int64     `json:"created"`
}

// QueueEntry records one interval of queue membership. Entries are
// never deleted and never reactivated; a fresh join creates a new one.
type QueueEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"user"`
	PlayerID  string `json:"player"`
	BracketID string `json:"bracket"`
	Active    bool   `json:"active"`
	Created   int64  `json:"created"`
}

// UserProfile is the aggregated view served by the get-user endpoint.
type UserProfile struct {
	User
	Players []Player     `json:"players"`
	Queues  []QueueEntry `json:"queues"`
}
