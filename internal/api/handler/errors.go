package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/nimgame-go/internal/api/apierr"
	"github.com/mcoot/nimgame-go/internal/model"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// playerIDFromPath reads the {player_id} route variable
func playerIDFromPath(r *http.Request) (model.PlayerID, error) {
	id, err := strconv.Atoi(mux.Vars(r)["player_id"])
	if err != nil || id < 1 {
		return 0, NewInvalidRequestError("player_id must be a positive integer")
	}
	return model.PlayerID(id), nil
}

// matchIDFromPath reads the {match_id} route variable
func matchIDFromPath(r *http.Request) (model.MatchID, error) {
	id, err := strconv.Atoi(mux.Vars(r)["match_id"])
	if err != nil || id < 1 {
		return 0, NewInvalidRequestError("match_id must be a positive integer")
	}
	return model.MatchID(id), nil
}
