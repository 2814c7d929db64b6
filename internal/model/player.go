package model

import (
	"fmt"
	"time"
)

// PlayerID uniquely identifies a player. Assigned sequentially from 1.
type PlayerID int

// String implements fmt.Stringer
func (id PlayerID) String() string {
	return fmt.Sprintf("%d", int(id))
}

// Mode is the kind of opponent a player wants for their next match
type Mode string

const (
	ModeHuman Mode = "human"
	ModeCPU   Mode = "cpu"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeHuman || m == ModeCPU
}

// Difficulty selects the range the starting pile is drawn from
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// Valid reports whether d is a known difficulty
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyHard
}

// MarbleRange returns the inclusive bounds for the starting pile
func (d Difficulty) MarbleRange() (lo, hi int) {
	if d == DifficultyHard {
		return 2, 100
	}
	return 2, 20
}

// Player is a registered client and its preferences for the next match.
// The outbound message queue lives in storage, keyed by ID.
type Player struct {
	ID         PlayerID
	Mode       Mode
	Difficulty Difficulty
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPlayer returns a player with default preferences
func NewPlayer(id PlayerID, now time.Time) *Player {
	return &Player{
		ID:         id,
		Mode:       ModeHuman,
		Difficulty: DifficultyEasy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
