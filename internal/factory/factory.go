package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/nimgame-go/internal/dependencies/clock"
	"github.com/mcoot/nimgame-go/internal/dependencies/random"
	"github.com/mcoot/nimgame-go/internal/services/command"
	"github.com/mcoot/nimgame-go/internal/services/directory"
	"github.com/mcoot/nimgame-go/internal/services/strategy"
	"github.com/mcoot/nimgame-go/internal/storage"
	"github.com/mcoot/nimgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/nimgame-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/nimgame-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Strategy      strategy.Strategy
	Directory     *directory.Directory
	CommandRouter *command.Router
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
	// CPUStrategy names the computer opponent's strategy
	// If empty, defaults to "optimal"
	CPUStrategy string
	// Retention decides what happens to finished matches
	// If empty, defaults to "keep"
	Retention directory.RetentionPolicy
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(*cfg.SQLiteConfig)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	strat, err := strategy.Lookup(strategy.Registry(rnd), cfg.CPUStrategy)
	if err != nil {
		return nil, err
	}

	retention := cfg.Retention
	if retention == "" {
		retention = directory.RetentionKeep
	}
	if !retention.Valid() {
		return nil, fmt.Errorf("invalid Retention %q: must be 'keep' or 'reclaim'", retention)
	}

	return newWithDependencies(store, clk, rnd, strat, retention, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	strat strategy.Strategy,
	retention directory.RetentionPolicy,
	logger *slog.Logger,
) *App {
	dir := directory.New(store, strat, clk, rnd, retention, logger)
	router := command.NewRouter(dir, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		Strategy:      strat,
		Directory:     dir,
		CommandRouter: router,
	}
}

// Close stops every match unit and releases the storage backend
func (a *App) Close(ctx context.Context) error {
	err := a.Directory.Shutdown(ctx)
	if closer, ok := a.Storage.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}
