// Package admission decides whether a user may join a bracket's queue.
// It is pure read + validation: whitelist before blacklist, both before
// any queue-state check done elsewhere.
package admission

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/urban-bracket/internal/apperr"
	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/bracket"
)

// Controller enforces the bracket's admission rules.
type Controller struct {
	brackets bracket.Registry
	store    arena.ArenaStore
}

// New creates a new admission Controller.
func New(brackets bracket.Registry, store arena.ArenaStore) *Controller {
	return &Controller{
		brackets: brackets,
		store:    store,
	}
}

// Check validates that userID may join bracketID's queue right now.
// On success it returns the loaded bracket so the caller can reuse it
// without a second fetch.
func (c *Controller) Check(userID, bracketID string) (*bracket.Bracket, error) {
	b, err := c.brackets.Get(bracketID)
	if err != nil {
		return nil, apperr.Internal("load bracket", err)
	}
	if b == nil {
		return nil, apperr.NotFound("bracket does not exist")
	}

	if b.Whitelist.Active && !b.Whitelist.Contains(userID) {
		log.Debug("Join rejected by whitelist", "userID", userID, "bracketID", bracketID)
		return nil, apperr.Forbidden("not whitelisted")
	}
	if b.Blacklist.Active && b.Blacklist.Contains(userID) {
		log.Debug("Join rejected by blacklist", "userID", userID, "bracketID", bracketID)
		return nil, apperr.Forbidden("blacklisted")
	}

	user, err := c.store.GetUser(userID)
	if err != nil {
		return nil, apperr.Internal("load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user does not exist")
	}

	return b, nil
}
