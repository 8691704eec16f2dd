package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	// AtomicJoin switches queue joins to a single conditional insert
	// keyed on (user, bracket, active). Default off: the plain
	// read-decide-write sequence matches the original backend.
	AtomicJoin bool
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
