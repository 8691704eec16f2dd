package bracket

import (
	"database/sql"
	"slices"
	"sync"
)

// store handles database operations for the bracket registry.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Bracket is a competitive tier with its own admission rules and
// rating baseline.
type Bracket struct {
	ID        string `json:"id"`
	Whitelist Gate   `json:"whitelist"`
	Blacklist Gate   `json:"blacklist"`
	Specs     Specs  `json:"specs"`
}

// Gate is an admission list. An inactive gate admits everyone.
type Gate struct {
	Active bool     `json:"active"`
	Users  []string `json:"users"`
}

// Contains reports whether the user is on the list.
func (g Gate) Contains(userID string) bool {
	return slices.Contains(g.Users, userID)
}

// Specs holds the bracket's match-format parameters.
type Specs struct {
	StartRating float64 `json:"start_rating"`
	TeamSize    int     `json:"team_size"`
}
