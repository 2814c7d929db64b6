package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/nimgame-go/internal/api/request"
	"github.com/mcoot/nimgame-go/internal/api/response"
	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/services/directory"
)

// RegistrationFailedID is returned in place of a player ID when registration fails
const RegistrationFailedID = -1

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	directory *directory.Directory
	logger    *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(dir *directory.Directory, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		directory: dir,
		logger:    logger,
	}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := h.directory.RegisterPlayer(r.Context())
	if err != nil {
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		response.JSON(w, http.StatusServiceUnavailable, response.RegisterResponse{PlayerID: RegistrationFailedID})
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterResponse{PlayerID: int(id)})
}

// Get handles GET /api/v1/players/{player_id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writePlayer(w, r, id)
}

// UpdatePreferences handles PATCH /api/v1/players/{player_id}
func (h *PlayerHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Mode != "" {
		if err := h.directory.SetMode(r.Context(), id, model.Mode(req.Mode)); err != nil {
			WriteError(w, err)
			return
		}
	}
	if req.Difficulty != "" {
		if err := h.directory.SetDifficulty(r.Context(), id, model.Difficulty(req.Difficulty)); err != nil {
			WriteError(w, err)
			return
		}
	}

	h.writePlayer(w, r, id)
}

// ActiveMatch handles GET /api/v1/players/{player_id}/match
func (h *PlayerHandler) ActiveMatch(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	match, err := h.directory.ActiveMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(match))
}

func (h *PlayerHandler) writePlayer(w http.ResponseWriter, r *http.Request, id model.PlayerID) {
	player, err := h.directory.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	pending, err := h.directory.PendingMessages(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, pending))
}
