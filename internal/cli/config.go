package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	PlayerID     int
	PlayerFile   string
	Output       string
	Verbose      bool
	PollInterval time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	playerID, _ := strconv.Atoi(os.Getenv("NIMGAME_PLAYER"))
	return &Config{
		ServerURL:    getEnvOrDefault("NIMGAME_SERVER", "http://localhost:8080"),
		PlayerID:     playerID,
		PlayerFile:   getEnvOrDefault("NIMGAME_PLAYER_FILE", defaultPlayerFile()),
		Output:       "text",
		Verbose:      false,
		PollInterval: 500 * time.Millisecond,
	}
}

// LoadPlayer loads the player ID from file if not already set
func (c *Config) LoadPlayer() error {
	if c.PlayerID != 0 {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not registered yet
		}
		return err
	}

	id, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid player file %s: %w", c.PlayerFile, err)
	}

	c.PlayerID = id
	return nil
}

// SavePlayer saves the player ID to the player file
func (c *Config) SavePlayer(id int) error {
	c.PlayerID = id

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(strconv.Itoa(id)), 0600)
}

// RequirePlayer fails unless a player ID is known
func (c *Config) RequirePlayer() (int, error) {
	if c.PlayerID <= 0 {
		return 0, errors.New("no player ID: run 'nimgame register' or pass --player")
	}
	return c.PlayerID, nil
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nimgame/player"
	}
	return filepath.Join(home, ".nimgame", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
