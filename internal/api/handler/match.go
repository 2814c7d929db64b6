package handler

import (
	"net/http"

	"github.com/mcoot/nimgame-go/internal/api/response"
	"github.com/mcoot/nimgame-go/internal/services/directory"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	directory *directory.Directory
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(dir *directory.Directory) *MatchHandler {
	return &MatchHandler{directory: dir}
}

// Get handles GET /api/v1/matches/{match_id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	match, err := h.directory.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(match))
}
