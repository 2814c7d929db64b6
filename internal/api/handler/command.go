package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/nimgame-go/internal/api/request"
	"github.com/mcoot/nimgame-go/internal/api/response"
	"github.com/mcoot/nimgame-go/internal/services/command"
	"github.com/mcoot/nimgame-go/internal/services/directory"
)

// CommandHandler handles the command and message polling endpoints
type CommandHandler struct {
	router    *command.Router
	directory *directory.Directory
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(router *command.Router, dir *directory.Directory) *CommandHandler {
	return &CommandHandler{
		router:    router,
		directory: dir,
	}
}

// Execute handles POST /api/v1/players/{player_id}/commands
//
// Command failures are reported in the response text, so this only errors
// on a malformed request.
func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ExecuteCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	text := h.router.ExecuteCommand(r.Context(), id, req.Command)
	response.JSON(w, http.StatusOK, response.CommandResponse{Response: text})
}

// NextMessage handles POST /api/v1/players/{player_id}/messages/next
func (h *CommandHandler) NextMessage(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	msg, err := h.directory.NextMessage(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Message: msg})
}
