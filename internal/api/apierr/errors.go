package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/nimgame-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidMode        = "INVALID_MODE"
	CodeInvalidDifficulty  = "INVALID_DIFFICULTY"
	CodeMalformedCommand   = "MALFORMED_COMMAND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeNotInMatch         = "NOT_IN_MATCH"
	CodeAlreadyQueued      = "ALREADY_QUEUED"
	CodeMatchNotJoinable   = "MATCH_NOT_JOINABLE"
	CodeMatchFinished      = "MATCH_FINISHED"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeIllegalMove        = "ILLEGAL_MOVE"
	CodeRegistrationFailed = "REGISTRATION_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrNotInMatch):
		return &httpError{http.StatusNotFound, APIError{CodeNotInMatch, "Player is not in a match"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Mode must be human or cpu"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Difficulty must be easy or hard"}}
	case errors.Is(err, model.ErrMalformedCommand):
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedCommand, "Command is not recognised"}}
	case errors.Is(err, model.ErrAlreadyQueued):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyQueued, "Already queued for a match"}}
	case errors.Is(err, model.ErrMatchNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotJoinable, "Match cannot be joined"}}
	case errors.Is(err, model.ErrMatchFinished):
		return &httpError{http.StatusConflict, APIError{CodeMatchFinished, "Match has finished"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusBadRequest, APIError{CodeIllegalMove, "Illegal move"}}
	case errors.Is(err, model.ErrRegistrationFailed):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeRegistrationFailed, "Registration failed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
