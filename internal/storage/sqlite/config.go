package sqlite

import "time"

// Config holds SQLite database settings
type Config struct {
	// Path is the database file, or ":memory:" for a private in-process database
	Path string

	// BusyTimeout bounds how long a statement waits on a locked database
	BusyTimeout time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:        "./nimgame.db",
		BusyTimeout: 5 * time.Second,
	}
}
