package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidMode        = errors.New("invalid mode")
	ErrInvalidDifficulty  = errors.New("invalid difficulty")
	ErrMalformedCommand   = errors.New("malformed command")
	ErrRegistrationFailed = errors.New("player registration failed")

	// Matchmaking errors
	ErrAlreadyQueued = errors.New("player is already queued for a match")
	ErrNotInMatch    = errors.New("player is not in a match")

	// Match errors
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchNotJoinable = errors.New("match is not awaiting an opponent")
	ErrNotPlayerTurn    = errors.New("not this player's turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrMatchFinished    = errors.New("match has finished")
)
