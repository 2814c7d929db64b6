package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerDefaults(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPlayer(3, now)

	assert.Equal(t, PlayerID(3), p.ID)
	assert.Equal(t, ModeHuman, p.Mode)
	assert.Equal(t, DifficultyEasy, p.Difficulty)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestMarbleRange(t *testing.T) {
	lo, hi := DifficultyEasy.MarbleRange()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 20, hi)

	lo, hi = DifficultyHard.MarbleRange()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 100, hi)
}

func TestValidation(t *testing.T) {
	assert.True(t, ModeHuman.Valid())
	assert.True(t, ModeCPU.Valid())
	assert.False(t, Mode("robot").Valid())

	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("medium").Valid())
}

func TestCommandDescriptions(t *testing.T) {
	require.Len(t, Commands, 7)
	for _, c := range Commands {
		assert.True(t, strings.HasPrefix(c.Description(), string(c)+" - "), c)
	}
	assert.Empty(t, Command("jump").Description())
}

func TestMatchSeats(t *testing.T) {
	m := &Match{
		PlayerOne: HumanParticipant(1),
		PlayerTwo: StrategyParticipant(),
	}

	assert.True(t, m.HasParticipant(1))
	assert.False(t, m.HasParticipant(2))
	assert.Equal(t, StrategyParticipant(), m.Opponent(1))
	assert.Equal(t, HumanParticipant(1), m.Opponent(CPUPlayerID))
	assert.Equal(t, Participant{}, m.Opponent(2))
	assert.Len(t, m.Participants(), 2)
	assert.True(t, m.PlayerOne.IsHuman())
	assert.False(t, m.PlayerTwo.IsHuman())
}

func TestAwaitingMatchHasOneSeat(t *testing.T) {
	m := &Match{PlayerOne: HumanParticipant(4), State: MatchStateAwaitingOpponent}

	assert.Equal(t, []Participant{HumanParticipant(4)}, m.Participants())
	assert.False(t, m.HasParticipant(0))
	assert.False(t, m.IsFinished())
}

func TestCloneIsDeep(t *testing.T) {
	m := &Match{ID: 1, Moves: []Move{{PlayerID: 1, Amount: 2}}}
	c := m.Clone()

	c.Moves[0].Amount = 5
	c.Moves = append(c.Moves, Move{PlayerID: 2, Amount: 1})

	assert.Equal(t, 2, m.Moves[0].Amount)
	assert.Len(t, m.Moves, 1)
}
