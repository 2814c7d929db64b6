package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mcoot/nimgame-go/internal/api"
	"github.com/mcoot/nimgame-go/internal/factory"
	"github.com/mcoot/nimgame-go/internal/services/directory"
	redisstorage "github.com/mcoot/nimgame-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/nimgame-go/internal/storage/sqlite"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		CPUStrategy: os.Getenv("CPU_STRATEGY"),
		Retention:   directory.RetentionPolicy(os.Getenv("MATCH_RETENTION")),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure SQLite if storage type is sqlite
	if cfg.StorageType == factory.StorageTypeSQLite {
		sqliteCfg := sqlitestorage.DefaultConfig()
		if path := os.Getenv("SQLITE_PATH"); path != "" {
			sqliteCfg.Path = path
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Directory:     app.Directory,
		CommandRouter: app.CommandRouter,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("HTTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid HTTP_PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(apiRouter, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.String("strategy", app.Strategy.Name()),
	)

	// Wait for shutdown or error
	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	// Stop match units once no more requests can arrive
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := app.Close(closeCtx); err != nil {
		logger.Error("failed to stop matches", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	if exitCode != 0 {
		closeCancel()
		os.Exit(exitCode)
	}
}

// parseLogLevel maps LOG_LEVEL to a slog level, defaulting to info
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
