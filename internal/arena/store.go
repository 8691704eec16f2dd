package arena

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new ArenaStore.
func New(db *sql.DB) ArenaStore {
	return &store{
		db: db,
	}
}

// UpsertUser creates the user or, if it already exists, updates the
// display name only. The created timestamp is never overwritten.
func (s *store) UpsertUser(userID, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing string
	err := s.db.QueryRow("SELECT id FROM users WHERE id = ?", userID).Scan(&existing)
	if err == nil {
		_, err = s.db.Exec("UPDATE users SET name = ? WHERE id = ?", name, userID)
		return false, err
	}
	if err != sql.ErrNoRows {
		return false, err
	}

	_, err = s.db.Exec("INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)", userID, name, time.Now().Unix())
	return true, err
}

func (s *store) GetUser(userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u User
	err := s.db.QueryRow("SELECT id, name, created_at FROM users WHERE id = ?", userID).Scan(&u.ID, &u.Name, &u.Created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *store) ListUsers() ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, created_at FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Created); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *store) PlayersForUser(userID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers("SELECT id, user_id, bracket_id, ratings_json, created_at FROM players WHERE user_id = ? ORDER BY created_at, id", userID)
}

func (s *store) EntriesForUser(userID string) ([]QueueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEntries("SELECT id, user_id, player_id, bracket_id, active, created_at FROM queue_entries WHERE user_id = ? ORDER BY created_at, id", userID)
}

// FindPlayer returns the player record for (user, bracket), or nil if
// none exists. Should duplicates ever exist, the earliest-created one
// wins; the ORDER BY makes that tie-break deterministic.
func (s *store) FindPlayer(userID, bracketID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players, err := s.queryPlayers("SELECT id, user_id, bracket_id, ratings_json, created_at FROM players WHERE user_id = ? AND bracket_id = ? ORDER BY created_at, id LIMIT 1", userID, bracketID)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}
	return &players[0], nil
}

func (s *store) CreatePlayer(userID, bracketID string, startRating float64) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := &Player{
		ID:        uuid.New().String(),
		UserID:    userID,
		BracketID: bracketID,
		Ratings:   []float64{startRating},
		Created:   time.Now().Unix(),
	}
	ratingsJSON, err := json.Marshal(player.Ratings)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		"INSERT INTO players (id, user_id, bracket_id, ratings_json, created_at) VALUES (?, ?, ?, ?, ?)",
		player.ID, player.UserID, player.BracketID, string(ratingsJSON), player.Created,
	)
	if err != nil {
		return nil, err
	}
	log.Info("Created player record", "playerID", player.ID, "userID", userID, "bracketID", bracketID, "startRating", startRating)
	return player, nil
}

func (s *store) ActiveEntries(userID, bracketID string) ([]QueueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEntries("SELECT id, user_id, player_id, bracket_id, active, created_at FROM queue_entries WHERE user_id = ? AND bracket_id = ? AND active = 1 ORDER BY created_at, id", userID, bracketID)
}

func (s *store) CreateEntry(userID, playerID, bracketID string) (*QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := newEntry(userID, playerID, bracketID)
	_, err := s.db.Exec(
		"INSERT INTO queue_entries (id, user_id, player_id, bracket_id, active, created_at) VALUES (?, ?, ?, ?, 1, ?)",
		entry.ID, entry.UserID, entry.PlayerID, entry.BracketID, entry.Created,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateEntryUnlessActive performs the insert and the "no active entry"
// guard as a single statement, so two concurrent joins cannot both
// slip past the check.
func (s *store) CreateEntryUnlessActive(userID, playerID, bracketID string) (*QueueEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := newEntry(userID, playerID, bracketID)
	res, err := s.db.Exec(`
		INSERT INTO queue_entries (id, user_id, player_id, bracket_id, active, created_at)
		SELECT ?, ?, ?, ?, 1, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM queue_entries WHERE user_id = ? AND bracket_id = ? AND active = 1
		)`,
		entry.ID, entry.UserID, entry.PlayerID, entry.BracketID, entry.Created,
		userID, bracketID,
	)
	if err != nil {
		return nil, false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if inserted == 0 {
		return nil, false, nil
	}
	return entry, true, nil
}

func (s *store) DeactivateEntries(userID, bracketID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE queue_entries SET active = 0 WHERE user_id = ? AND bracket_id = ? AND active = 1", userID, bracketID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear wipes users, players and queue entries. Brackets are left
// alone: they are seeded configuration, not runtime state.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"queue_entries", "players", "users"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

// ClearUser removes a single user along with their player records and
// queue entries across all brackets.
func (s *store) ClearUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []string{
		"DELETE FROM queue_entries WHERE user_id = ?",
		"DELETE FROM players WHERE user_id = ?",
		"DELETE FROM users WHERE id = ?",
	} {
		if _, err := s.db.Exec(stmt, userID); err != nil {
			log.Error("Failed to clear user record", "userID", userID, "error", err)
		}
	}
}

func newEntry(userID, playerID, bracketID string) *QueueEntry {
	return &QueueEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlayerID:  playerID,
		BracketID: bracketID,
		Active:    true,
		Created:   time.Now().Unix(),
	}
}

func (s *store) queryPlayers(query string, args ...any) ([]Player, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var p Player
		var ratingsJSON string
		if err := rows.Scan(&p.ID, &p.UserID, &p.BracketID, &ratingsJSON, &p.Created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ratingsJSON), &p.Ratings); err != nil {
			log.Error("Failed to unmarshal ratings_json", "error", err, "playerID", p.ID)
			p.Ratings = []float64{}
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) queryEntries(query string, args ...any) ([]QueueEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []QueueEntry{}
	for rows.Next() {
		var e QueueEntry
		var active int
		if err := rows.Scan(&e.ID, &e.UserID, &e.PlayerID, &e.BracketID, &active, &e.Created); err != nil {
			return nil, err
		}
		e.Active = active == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
