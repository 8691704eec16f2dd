package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedBracket struct {
	id              string
	whitelistActive bool
	whitelist       []string
	blacklistActive bool
	blacklist       []string
	startRating     float64
	teamSize        int
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	brackets := []seedBracket{
		{id: "casual-5v5", startRating: 1000, teamSize: 5},
		{id: "competitive-5v5", startRating: 1200, teamSize: 5},
		{
			id:              "invitational",
			whitelistActive: true,
			whitelist:       []string{"seed-user-1", "seed-user-2"},
			startRating:     1500,
			teamSize:        2,
		},
	}

	for _, b := range brackets {
		whitelistJSON, _ := json.Marshal(b.whitelist)
		blacklistJSON, _ := json.Marshal(b.blacklist)
		_, err := db.Exec(`
			INSERT INTO brackets (id, whitelist_active, whitelist_users_json, blacklist_active, blacklist_users_json, start_rating, team_size)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				whitelist_active = excluded.whitelist_active,
				whitelist_users_json = excluded.whitelist_users_json,
				blacklist_active = excluded.blacklist_active,
				blacklist_users_json = excluded.blacklist_users_json,
				start_rating = excluded.start_rating,
				team_size = excluded.team_size;`,
			b.id, b.whitelistActive, string(whitelistJSON), b.blacklistActive, string(blacklistJSON), b.startRating, b.teamSize)
		if err != nil {
			log.Fatalf("Failed to seed bracket %s: %s", b.id, err)
		}
	}
	log.Info("Ensured brackets exist.", "count", len(brackets))

	demoUsers := []struct {
		id   string
		name string
	}{
		{"seed-user-1", "Seeder User A"},
		{"seed-user-2", "Seeder User B"},
		{"seed-user-3", "Seeder User C"},
		{"seed-user-4", "Seeder User D"},
	}

	for _, u := range demoUsers {
		_, err := db.Exec("INSERT OR IGNORE INTO users (id, name, created_at) VALUES (?, ?, ?)", u.id, u.name, time.Now().Unix())
		if err != nil {
			log.Fatalf("Failed to insert demo user %s: %s", u.name, err)
		}
	}
	log.Info("Ensured demo users exist.")

	// Give the first two users a player record in the casual bracket so
	// a fresh environment has something to look at.
	ratingsJSON, _ := json.Marshal([]float64{1000})
	for _, u := range demoUsers[:2] {
		var existing int
		err := db.QueryRow("SELECT COUNT(1) FROM players WHERE user_id = ? AND bracket_id = ?", u.id, "casual-5v5").Scan(&existing)
		if err != nil {
			log.Fatalf("Failed to check player record for %s: %s", u.id, err)
		}
		if existing > 0 {
			continue
		}
		_, err = db.Exec("INSERT INTO players (id, user_id, bracket_id, ratings_json, created_at) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), u.id, "casual-5v5", string(ratingsJSON), time.Now().Unix())
		if err != nil {
			log.Fatalf("Failed to insert player record for %s: %s", u.id, err)
		}
	}
	log.Info("Ensured demo player records exist.")

	log.Info("Seeding complete.")
}
