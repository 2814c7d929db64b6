package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/nimgame-go/internal/api/handler"
	"github.com/mcoot/nimgame-go/internal/api/middleware"
	"github.com/mcoot/nimgame-go/internal/services/command"
	"github.com/mcoot/nimgame-go/internal/services/directory"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Directory     *directory.Directory
	CommandRouter *command.Router
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Directory, cfg.Logger)
	commandHandler := handler.NewCommandHandler(cfg.CommandRouter, cfg.Directory)
	matchHandler := handler.NewMatchHandler(cfg.Directory)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID())
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}", playerHandler.UpdatePreferences).Methods(http.MethodPatch)
	api.HandleFunc("/players/{player_id}/match", playerHandler.ActiveMatch).Methods(http.MethodGet)

	// Command and message polling routes
	api.HandleFunc("/players/{player_id}/commands", commandHandler.Execute).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/messages/next", commandHandler.NextMessage).Methods(http.MethodPost)

	// Match routes
	api.HandleFunc("/matches/{match_id}", matchHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
