package response

import (
	"time"

	"github.com/mcoot/nimgame-go/internal/model"
)

// RegisterResponse is the response for player registration. PlayerID is
// -1 when registration failed.
type RegisterResponse struct {
	PlayerID int `json:"player_id"`
}

// CommandResponse is the synchronous reply to a player command
type CommandResponse struct {
	Response string `json:"response"`
}

// MessageResponse carries the oldest queued message, or "" if none
type MessageResponse struct {
	Message string `json:"message"`
}

// Player represents a player in API responses
type Player struct {
	ID              int       `json:"id"`
	Mode            string    `json:"mode"`
	Difficulty      string    `json:"difficulty"`
	PendingMessages int       `json:"pending_messages"`
	CreatedAt       time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player, pending int) Player {
	return Player{
		ID:              int(p.ID),
		Mode:            string(p.Mode),
		Difficulty:      string(p.Difficulty),
		PendingMessages: pending,
		CreatedAt:       p.CreatedAt,
	}
}

// Participant represents one seat in a match. PlayerID is omitted for the
// computer opponent.
type Participant struct {
	Kind     string `json:"kind"`
	PlayerID *int   `json:"player_id,omitempty"`
}

// ParticipantFromModel converts a filled seat, returning nil for an empty one
func ParticipantFromModel(p model.Participant) *Participant {
	if !p.IsSet() {
		return nil
	}
	out := &Participant{Kind: string(p.Kind)}
	if p.IsHuman() {
		id := int(p.PlayerID)
		out.PlayerID = &id
	}
	return out
}

// Move represents a completed move
type Move struct {
	Participant Participant `json:"participant"`
	Amount      int         `json:"amount"`
}

// Match represents a match in API responses
type Match struct {
	ID             int          `json:"id"`
	State          string       `json:"state"`
	Difficulty     string       `json:"difficulty"`
	PlayerOne      *Participant `json:"player_one"`
	PlayerTwo      *Participant `json:"player_two"`
	TotalMarbles   int          `json:"total_marbles"`
	CurrentMarbles int          `json:"current_marbles"`
	NextTurn       *Participant `json:"next_turn,omitempty"`
	Moves          []Move       `json:"moves"`
	Winner         *Participant `json:"winner,omitempty"`
	Loser          *Participant `json:"loser,omitempty"`
	Forfeited      bool         `json:"forfeited,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	FinishedAt     *time.Time   `json:"finished_at,omitempty"`
}

// MatchFromModel converts a model.Match to a response Match
func MatchFromModel(m *model.Match) Match {
	moves := make([]Move, len(m.Moves))
	for i, mv := range m.Moves {
		moves[i] = Move{
			Participant: *ParticipantFromModel(seatOf(m, mv.PlayerID)),
			Amount:      mv.Amount,
		}
	}

	out := Match{
		ID:             int(m.ID),
		State:          string(m.State),
		Difficulty:     string(m.Difficulty),
		PlayerOne:      ParticipantFromModel(m.PlayerOne),
		PlayerTwo:      ParticipantFromModel(m.PlayerTwo),
		TotalMarbles:   m.TotalMarbles,
		CurrentMarbles: m.CurrentMarbles,
		Moves:          moves,
		Forfeited:      m.Forfeited,
		CreatedAt:      m.CreatedAt,
	}

	switch m.State {
	case model.MatchStateInProgress:
		out.NextTurn = ParticipantFromModel(seatOf(m, m.NextTurn))
	case model.MatchStateFinished:
		out.Loser = ParticipantFromModel(seatOf(m, m.Loser))
		if m.PlayerTwo.IsSet() {
			out.Winner = ParticipantFromModel(seatOf(m, m.Winner))
		}
		finished := m.FinishedAt
		out.FinishedAt = &finished
	}

	return out
}

// seatOf returns the seat held by id, or an empty seat
func seatOf(m *model.Match, id model.PlayerID) model.Participant {
	switch {
	case m.PlayerOne.IsSet() && m.PlayerOne.PlayerID == id:
		return m.PlayerOne
	case m.PlayerTwo.IsSet() && m.PlayerTwo.PlayerID == id:
		return m.PlayerTwo
	}
	return model.Participant{}
}
