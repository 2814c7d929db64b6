package directory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/nimgame-go/internal/dependencies/mocks"
	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/services/strategy"
	"github.com/mcoot/nimgame-go/internal/storage/memory"
	"github.com/mcoot/nimgame-go/internal/testutil"
)

type DirectorySuite struct {
	suite.Suite
	storage   *memory.Storage
	clock     *mocks.MockClock
	random    *mocks.MockRandom
	directory *Directory
	ctx       context.Context
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.directory = s.newDirectory(RetentionKeep)
	s.ctx = context.Background()
}

func (s *DirectorySuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Require().NoError(s.directory.Shutdown(ctx))
}

func (s *DirectorySuite) newDirectory(retention RetentionPolicy) *Directory {
	return New(s.storage, strategy.NewOptimal(), s.clock, s.random, retention, testutil.NopLogger())
}

func (s *DirectorySuite) register() model.PlayerID {
	id, err := s.directory.RegisterPlayer(s.ctx)
	s.Require().NoError(err)
	return id
}

func (s *DirectorySuite) drain(id model.PlayerID) []string {
	var out []string
	for {
		msg, err := s.directory.NextMessage(s.ctx, id)
		s.Require().NoError(err)
		if msg == "" {
			return out
		}
		out = append(out, msg)
	}
}

// Registration and preferences

func (s *DirectorySuite) TestRegisterPlayerAssignsSequentialIDs() {
	s.Equal(model.PlayerID(1), s.register())
	s.Equal(model.PlayerID(2), s.register())

	player, err := s.directory.GetPlayer(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(model.ModeHuman, player.Mode)
	s.Equal(model.DifficultyEasy, player.Difficulty)
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *DirectorySuite) TestSetPreferences() {
	id := s.register()

	s.Require().NoError(s.directory.SetMode(s.ctx, id, model.ModeCPU))
	s.Require().NoError(s.directory.SetDifficulty(s.ctx, id, model.DifficultyHard))

	player, err := s.directory.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.ModeCPU, player.Mode)
	s.Equal(model.DifficultyHard, player.Difficulty)
}

func (s *DirectorySuite) TestSetPreferencesUnknownPlayer() {
	s.ErrorIs(s.directory.SetMode(s.ctx, 42, model.ModeCPU), model.ErrPlayerNotFound)
	s.ErrorIs(s.directory.SetDifficulty(s.ctx, 42, model.DifficultyHard), model.ErrPlayerNotFound)
}

func (s *DirectorySuite) TestSetPreferencesRejectsUnknownValues() {
	id := s.register()
	s.ErrorIs(s.directory.SetMode(s.ctx, id, "robot"), model.ErrInvalidMode)
	s.ErrorIs(s.directory.SetDifficulty(s.ctx, id, "nightmare"), model.ErrInvalidDifficulty)
}

// Matchmaking

func (s *DirectorySuite) TestTwoEasyHumansArePaired() {
	p1, p2 := s.register(), s.register()
	s.random.QueueIntn(8, 0)

	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p2))

	s.Equal([]string{
		model.MsgLobbyCreated,
		"Match found!\nThe total amount of marbles is 10",
		model.MsgYourTurn,
	}, s.drain(p1))
	s.Equal([]string{
		model.MsgLobbyAssigned,
		"Match found!\nThe total amount of marbles is 10",
		model.MsgOtherTurn,
	}, s.drain(p2))

	m1, err := s.directory.ActiveMatch(s.ctx, p1)
	s.Require().NoError(err)
	m2, err := s.directory.ActiveMatch(s.ctx, p2)
	s.Require().NoError(err)
	s.Equal(m1.ID, m2.ID)
	s.Equal(model.MatchStateInProgress, m1.State)
	s.Equal(1, s.directory.MatchCount())
}

func (s *DirectorySuite) TestDifferentDifficultiesAreNotPaired() {
	p1, p2 := s.register(), s.register()
	s.Require().NoError(s.directory.SetDifficulty(s.ctx, p2, model.DifficultyHard))

	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p2))

	s.Equal(2, s.directory.MatchCount())
	s.Equal([]string{model.MsgLobbyCreated}, s.drain(p2))

	m2, err := s.directory.ActiveMatch(s.ctx, p2)
	s.Require().NoError(err)
	s.Equal(model.MatchStateAwaitingOpponent, m2.State)
	s.Equal(model.DifficultyHard, m2.Difficulty)
}

func (s *DirectorySuite) TestWaitingMatchesAreFilledInCreationOrder() {
	p1, p2, p3 := s.register(), s.register(), s.register()
	s.Require().NoError(s.directory.SetDifficulty(s.ctx, p2, model.DifficultyHard))

	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p2))
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p3))

	m3, err := s.directory.ActiveMatch(s.ctx, p3)
	s.Require().NoError(err)
	s.Equal(model.HumanParticipant(p1), m3.PlayerOne)
	s.Equal(model.HumanParticipant(p3), m3.PlayerTwo)
}

func (s *DirectorySuite) TestStartWhileInMatchIsRefused() {
	p1 := s.register()
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.drain(p1)

	err := s.directory.StartMatchmaking(s.ctx, p1)
	s.ErrorIs(err, model.ErrAlreadyQueued)
	s.Equal([]string{model.MsgAlreadyQueued}, s.drain(p1))
	s.Equal(1, s.directory.MatchCount())
}

func (s *DirectorySuite) TestStartUnknownPlayer() {
	s.ErrorIs(s.directory.StartMatchmaking(s.ctx, 99), model.ErrPlayerNotFound)
}

func (s *DirectorySuite) TestCPUMatchStartsImmediately() {
	p1 := s.register()
	s.Require().NoError(s.directory.SetMode(s.ctx, p1, model.ModeCPU))
	// pile of 12, human moves first
	s.random.QueueIntn(10, 0)

	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))

	s.Equal([]string{
		model.MsgCPUGameStarted,
		model.MsgCPUMatchStarted,
		"Match found!\nThe total amount of marbles is 12",
		model.MsgYourTurn,
	}, s.drain(p1))

	m, err := s.directory.ActiveMatch(s.ctx, p1)
	s.Require().NoError(err)
	s.Equal(model.StrategyParticipant(), m.PlayerTwo)

	// Leaving 7 puts the computer on a safe size, so it can only take one
	s.Require().NoError(s.directory.SubmitMove(s.ctx, p1, 5))
	s.Require().Eventually(func() bool {
		m, err := s.directory.ActiveMatch(s.ctx, p1)
		return err == nil && m.NextTurn == p1 && m.CurrentMarbles == 6
	}, time.Second, 5*time.Millisecond)
}

// Moves and forfeits

func (s *DirectorySuite) TestSubmitMoveWithoutMatch() {
	p1 := s.register()
	s.ErrorIs(s.directory.SubmitMove(s.ctx, p1, 1), model.ErrNotInMatch)
	s.ErrorIs(s.directory.SubmitMove(s.ctx, 77, 1), model.ErrPlayerNotFound)
	s.ErrorIs(s.directory.Forfeit(s.ctx, p1), model.ErrNotInMatch)
}

func (s *DirectorySuite) TestExitMidMatchHandsOpponentTheWin() {
	p1, p2 := s.register(), s.register()
	s.random.QueueIntn(8, 0)
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p2))
	s.Require().NoError(s.directory.SubmitMove(s.ctx, p1, 2))
	s.drain(p1)
	s.drain(p2)

	s.Require().NoError(s.directory.Forfeit(s.ctx, p2))

	s.Equal([]string{model.MsgWon, model.MsgMatchEnded}, s.drain(p1))
	s.Equal([]string{model.MsgGaveUp, model.MsgLost, model.MsgMatchEnded}, s.drain(p2))

	_, err := s.directory.ActiveMatch(s.ctx, p1)
	s.ErrorIs(err, model.ErrNotInMatch)

	// Both players may queue again straight away
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p2))
	m, err := s.directory.ActiveMatch(s.ctx, p2)
	s.Require().NoError(err)
	s.Equal(model.MatchStateInProgress, m.State)
	s.Equal(model.MatchID(2), m.ID)
}

func (s *DirectorySuite) TestAbandonedLobbyIsNotJoined() {
	p1, p2 := s.register(), s.register()
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.Forfeit(s.ctx, p1))

	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p2))
	s.Equal([]string{model.MsgLobbyCreated}, s.drain(p2))
	s.Equal(2, s.directory.MatchCount())
}

// Polling

func (s *DirectorySuite) TestNextMessage() {
	p1 := s.register()

	msg, err := s.directory.NextMessage(s.ctx, p1)
	s.Require().NoError(err)
	s.Empty(msg)

	_, err = s.directory.NextMessage(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *DirectorySuite) TestPendingMessages() {
	p1 := s.register()
	s.directory.QueueMessage(s.ctx, p1, "one")
	s.directory.QueueMessage(s.ctx, p1, "two")

	n, err := s.directory.PendingMessages(s.ctx, p1)
	s.Require().NoError(err)
	s.Equal(2, n)

	s.Equal([]string{"one", "two"}, s.drain(p1))
	n, err = s.directory.PendingMessages(s.ctx, p1)
	s.Require().NoError(err)
	s.Zero(n)

	_, err = s.directory.PendingMessages(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *DirectorySuite) TestQueueMessageIgnoresUnknownPlayer() {
	s.directory.QueueMessage(s.ctx, 99, "lost")

	_, err := s.directory.NextMessage(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Retention

func (s *DirectorySuite) TestKeepRetainsFinishedMatches() {
	p1 := s.register()
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.Forfeit(s.ctx, p1))

	m, err := s.directory.GetMatch(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.MatchStateFinished, m.State)
	s.Equal(1, s.directory.MatchCount())
}

func (s *DirectorySuite) TestReclaimDropsFinishedMatches() {
	s.Require().NoError(s.directory.Shutdown(s.ctx))
	s.directory = s.newDirectory(RetentionReclaim)

	p1 := s.register()
	s.Require().NoError(s.directory.StartMatchmaking(s.ctx, p1))
	s.Require().NoError(s.directory.Forfeit(s.ctx, p1))

	s.Require().Eventually(func() bool {
		return s.directory.MatchCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, err := s.directory.GetMatch(s.ctx, 1)
	s.ErrorIs(err, model.ErrMatchNotFound)

	// The player's queue is untouched
	s.Equal([]string{model.MsgLobbyCreated, model.MsgGaveUp, model.MsgMatchEnded}, s.drain(p1))
}

func (s *DirectorySuite) TestConcurrentMatchmakingPairsEveryone() {
	const players = 10
	ids := make([]model.PlayerID, players)
	for i := range ids {
		ids[i] = s.register()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id model.PlayerID) {
			defer wg.Done()
			s.NoError(s.directory.StartMatchmaking(s.ctx, id))
		}(id)
	}
	wg.Wait()

	s.Equal(players/2, s.directory.MatchCount())
	for _, id := range ids {
		m, err := s.directory.ActiveMatch(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.MatchStateInProgress, m.State)
	}
}
