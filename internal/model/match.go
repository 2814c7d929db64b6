package model

import (
	"fmt"
	"math"
	"time"
)

// MatchID uniquely identifies a match. Assigned sequentially from 1.
type MatchID int

// String implements fmt.Stringer
func (id MatchID) String() string {
	return fmt.Sprintf("%d", int(id))
}

// CPUPlayerID is reserved for the strategy participant and never assigned to a human
const CPUPlayerID PlayerID = math.MinInt32

// ForfeitMove is the move amount that forfeits the match regardless of turn
const ForfeitMove = math.MaxInt

// MatchState is the lifecycle phase of a match
type MatchState string

const (
	MatchStateAwaitingOpponent MatchState = "awaiting_opponent"
	MatchStateInProgress       MatchState = "in_progress"
	MatchStateFinished         MatchState = "finished"
)

// ParticipantKind distinguishes humans from the built-in strategy
type ParticipantKind string

const (
	ParticipantNone     ParticipantKind = ""
	ParticipantHuman    ParticipantKind = "human"
	ParticipantStrategy ParticipantKind = "strategy"
)

// Participant is one seat in a match
type Participant struct {
	Kind     ParticipantKind
	PlayerID PlayerID
}

// HumanParticipant returns a participant seat for a registered player
func HumanParticipant(id PlayerID) Participant {
	return Participant{Kind: ParticipantHuman, PlayerID: id}
}

// StrategyParticipant returns the seat used by the computer opponent
func StrategyParticipant() Participant {
	return Participant{Kind: ParticipantStrategy, PlayerID: CPUPlayerID}
}

// IsHuman reports whether the seat is held by a registered player
func (p Participant) IsHuman() bool {
	return p.Kind == ParticipantHuman
}

// IsSet reports whether the seat has been filled
func (p Participant) IsSet() bool {
	return p.Kind != ParticipantNone
}

// Move is a completed removal from the pile
type Move struct {
	PlayerID PlayerID
	Amount   int
}

// Match is a snapshot of a single game between two participants
type Match struct {
	ID             MatchID
	PlayerOne      Participant
	PlayerTwo      Participant
	Difficulty     Difficulty
	TotalMarbles   int
	CurrentMarbles int
	NextTurn       PlayerID
	State          MatchState
	Moves          []Move

	// Set once the match finishes. Zero when abandoned before pairing.
	Winner    PlayerID
	Loser     PlayerID
	Forfeited bool

	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt time.Time
}

// IsFinished reports whether the match has reached its terminal state
func (m *Match) IsFinished() bool {
	return m.State == MatchStateFinished
}

// HasParticipant reports whether the player holds either seat
func (m *Match) HasParticipant(id PlayerID) bool {
	return (m.PlayerOne.IsSet() && m.PlayerOne.PlayerID == id) ||
		(m.PlayerTwo.IsSet() && m.PlayerTwo.PlayerID == id)
}

// Opponent returns the other seat, or a zero Participant if id is not seated
func (m *Match) Opponent(id PlayerID) Participant {
	switch {
	case m.PlayerOne.IsSet() && m.PlayerOne.PlayerID == id:
		return m.PlayerTwo
	case m.PlayerTwo.IsSet() && m.PlayerTwo.PlayerID == id:
		return m.PlayerOne
	}
	return Participant{}
}

// Participants returns the filled seats in seat order
func (m *Match) Participants() []Participant {
	var out []Participant
	if m.PlayerOne.IsSet() {
		out = append(out, m.PlayerOne)
	}
	if m.PlayerTwo.IsSet() {
		out = append(out, m.PlayerTwo)
	}
	return out
}

// Clone returns a deep copy safe to hand outside the owning engine
func (m *Match) Clone() *Match {
	c := *m
	c.Moves = append([]Move(nil), m.Moves...)
	return &c
}
