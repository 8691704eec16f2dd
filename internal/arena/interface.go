package arena

// ArenaStore defines the interface for interacting with the user,
// player and queue-entry records. Lookups for a single record return
// (nil, nil) when the record is absent; classification into
// user-facing errors is the caller's job.
type ArenaStore interface {
	// Users
	UpsertUser(userID, name string) (created bool, err error)
	GetUser(userID string) (*User, error)
	ListUsers() ([]User, error)

	// Per-user aggregation
	PlayersForUser(userID string) ([]Player, error)
	EntriesForUser(userID string) ([]QueueEntry, error)

	// Players are bracket-scoped participation records. FindPlayer
	// applies the earliest-created-first policy when duplicates exist.
	FindPlayer(userID, bracketID string) (*Player, error)
	CreatePlayer(userID, bracketID string, startRating float64) (*Player, error)

	// Queue entries
	ActiveEntries(userID, bracketID string) ([]QueueEntry, error)
	CreateEntry(userID, playerID, bracketID string) (*QueueEntry, error)
	// CreateEntryUnlessActive inserts a new active entry only if no
	// active entry exists for (user, bracket), in one statement.
	// Returns inserted=false when an active entry was already there.
	CreateEntryUnlessActive(userID, playerID, bracketID string) (entry *QueueEntry, inserted bool, err error)
	// DeactivateEntries flips every active entry for (user, bracket)
	// to inactive and returns how many rows changed.
	DeactivateEntries(userID, bracketID string) (int64, error)

	Clear()
	// ClearUser removes one user and everything they own.
	ClearUser(userID string)
}
