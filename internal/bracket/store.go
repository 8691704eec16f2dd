package bracket

import (
	"database/sql"
	"encoding/json"

	"github.com/charmbracelet/log"
)

// New creates a new bracket Registry.
func New(db *sql.DB) Registry {
	return &store{
		db: db,
	}
}

func (s *store) Get(bracketID string) (*Bracket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, whitelist_active, whitelist_users_json, blacklist_active, blacklist_users_json, start_rating, team_size FROM brackets WHERE id = ?", bracketID)
	b, err := scanBracket(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *store) List() ([]Bracket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, whitelist_active, whitelist_users_json, blacklist_active, blacklist_users_json, start_rating, team_size FROM brackets ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brackets := []Bracket{}
	for rows.Next() {
		b, err := scanBracket(rows)
		if err != nil {
			return nil, err
		}
		brackets = append(brackets, *b)
	}
	return brackets, rows.Err()
}

func (s *store) Upsert(b *Bracket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	whitelistJSON, err := json.Marshal(b.Whitelist.Users)
	if err != nil {
		return err
	}
	blacklistJSON, err := json.Marshal(b.Blacklist.Users)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO brackets (id, whitelist_active, whitelist_users_json, blacklist_active, blacklist_users_json, start_rating, team_size)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			whitelist_active = excluded.whitelist_active,
			whitelist_users_json = excluded.whitelist_users_json,
			blacklist_active = excluded.blacklist_active,
			blacklist_users_json = excluded.blacklist_users_json,
			start_rating = excluded.start_rating,
			team_size = excluded.team_size;
	`, b.ID, boolToInt(b.Whitelist.Active), string(whitelistJSON), boolToInt(b.Blacklist.Active), string(blacklistJSON), b.Specs.StartRating, b.Specs.TeamSize)
	return err
}

func scanBracket(scanner interface{ Scan(...any) error }) (*Bracket, error) {
	var b Bracket
	var whitelistActive, blacklistActive int
	var whitelistJSON, blacklistJSON sql.NullString

	err := scanner.Scan(&b.ID, &whitelistActive, &whitelistJSON, &blacklistActive, &blacklistJSON, &b.Specs.StartRating, &b.Specs.TeamSize)
	if err != nil {
		return nil, err
	}

	b.Whitelist.Active = whitelistActive == 1
	b.Blacklist.Active = blacklistActive == 1
	b.Whitelist.Users = unmarshalUsers(whitelistJSON, b.ID, "whitelist")
	b.Blacklist.Users = unmarshalUsers(blacklistJSON, b.ID, "blacklist")
	return &b, nil
}

func unmarshalUsers(raw sql.NullString, bracketID, gate string) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var users []string
	if err := json.Unmarshal([]byte(raw.String), &users); err != nil {
		log.Error("Failed to unmarshal gate users", "error", err, "bracketID", bracketID, "gate", gate)
		return []string{}
	}
	return users
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
