package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/nimgame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestNextPlayerIDIsSequential() {
	for want := 1; want <= 3; want++ {
		id, err := s.storage.NextPlayerID(s.ctx)
		s.Require().NoError(err)
		s.Equal(model.PlayerID(want), id)
	}
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer(1, time.Now())
	player.Mode = model.ModeCPU

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.ModeCPU, retrieved.Mode)
	s.Equal(model.DifficultyEasy, retrieved.Difficulty)
}

func (s *StorageSuite) TestGetPlayerReturnsCopy() {
	_ = s.storage.SavePlayer(s.ctx, model.NewPlayer(1, time.Now()))

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	retrieved.Difficulty = model.DifficultyHard

	again, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.DifficultyEasy, again.Difficulty)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	id, err := s.storage.NextMatchID(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.MatchID(1), id)

	match := &model.Match{
		ID:             id,
		PlayerOne:      model.HumanParticipant(1),
		PlayerTwo:      model.StrategyParticipant(),
		Difficulty:     model.DifficultyEasy,
		TotalMarbles:   12,
		CurrentMarbles: 9,
		State:          model.MatchStateInProgress,
		Moves:          []model.Move{{PlayerID: 1, Amount: 3}},
	}
	s.Require().NoError(s.storage.SaveMatch(s.ctx, match))

	// Mutating the original must not leak into storage
	match.Moves[0].Amount = 99

	retrieved, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(9, retrieved.CurrentMarbles)
	s.Equal(3, retrieved.Moves[0].Amount)
	s.Equal(model.ParticipantStrategy, retrieved.PlayerTwo.Kind)
}

func (s *StorageSuite) TestDeleteMatch() {
	_ = s.storage.SaveMatch(s.ctx, &model.Match{ID: 1})

	s.Require().NoError(s.storage.DeleteMatch(s.ctx, 1))

	_, err := s.storage.GetMatch(s.ctx, 1)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// Message queue tests

func (s *StorageSuite) TestMessagesAreFIFO() {
	s.Require().NoError(s.storage.PushMessage(s.ctx, 1, "first"))
	s.Require().NoError(s.storage.PushMessage(s.ctx, 1, "second"))
	s.Require().NoError(s.storage.PushMessage(s.ctx, 2, "other"))

	n, err := s.storage.PendingMessages(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(2, n)

	msg, ok, err := s.storage.PopMessage(s.ctx, 1)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("first", msg)

	msg, ok, err = s.storage.PopMessage(s.ctx, 1)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("second", msg)

	_, ok, err = s.storage.PopMessage(s.ctx, 1)
	s.Require().NoError(err)
	s.False(ok)

	n, err = s.storage.PendingMessages(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *StorageSuite) TestConcurrentPushAndPopLosesNothing() {
	const total = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			_ = s.storage.PushMessage(s.ctx, 7, "m")
		}
	}()

	popped := 0
	for popped < total {
		if _, ok, _ := s.storage.PopMessage(s.ctx, 7); ok {
			popped++
		}
	}
	wg.Wait()

	n, err := s.storage.PendingMessages(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(0, n)
}
