package command

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/nimgame-go/internal/dependencies/mocks"
	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/services/directory"
	"github.com/mcoot/nimgame-go/internal/services/strategy"
	"github.com/mcoot/nimgame-go/internal/storage/memory"
	"github.com/mcoot/nimgame-go/internal/testutil"
)

type RouterSuite struct {
	suite.Suite
	random    *mocks.MockRandom
	directory *directory.Directory
	router    *Router
	ctx       context.Context
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.directory = directory.New(
		memory.New(),
		strategy.NewOptimal(),
		mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		s.random,
		directory.RetentionKeep,
		testutil.NopLogger(),
	)
	s.router = NewRouter(s.directory, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RouterSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Require().NoError(s.directory.Shutdown(ctx))
}

func (s *RouterSuite) register() model.PlayerID {
	id, err := s.directory.RegisterPlayer(s.ctx)
	s.Require().NoError(err)
	return id
}

func (s *RouterSuite) exec(id model.PlayerID, text string) string {
	return s.router.ExecuteCommand(s.ctx, id, text)
}

func (s *RouterSuite) drain(id model.PlayerID) []string {
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

func (s *RouterSuite) TestHelpListsCommandsInOrder() {
	id := s.register()

	lines := strings.Split(s.exec(id, "help"), "\n")
	s.Require().Len(lines, 7)
	s.Equal("help - shows a list of the available commands", lines[0])
	s.Equal("start - tells the server that you are ready to play", lines[1])
	s.True(strings.HasPrefix(lines[2], "human - "))
	s.True(strings.HasPrefix(lines[3], "cpu - "))
	s.True(strings.HasPrefix(lines[4], "exit - "))
	s.Equal("hard - chooses hard mode: 2 to 100 marbles", lines[5])
	s.Equal("easy - chooses easy mode: 2 to 20 marbles", lines[6])
}

func (s *RouterSuite) TestPreferenceCommands() {
	id := s.register()

	s.Equal(RespCPUOK, s.exec(id, "cpu"))
	s.Equal(RespHardOK, s.exec(id, "hard"))

	player, err := s.directory.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.ModeCPU, player.Mode)
	s.Equal(model.DifficultyHard, player.Difficulty)

	s.Equal(RespHumanOK, s.exec(id, "human"))
	s.Equal(RespEasyOK, s.exec(id, "easy"))

	player, err = s.directory.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.ModeHuman, player.Mode)
	s.Equal(model.DifficultyEasy, player.Difficulty)
}

func (s *RouterSuite) TestPreferenceCommandsForUnknownPlayer() {
	s.Equal(RespHumanFailed, s.exec(9, "human"))
	s.Equal(RespCPUFailed, s.exec(9, "cpu"))
	s.Equal(RespHardFailed, s.exec(9, "hard"))
	s.Equal(RespEasyFailed, s.exec(9, "easy"))
	s.Equal(RespStartFailed, s.exec(9, "start"))
}

func (s *RouterSuite) TestInputIsTrimmed() {
	id := s.register()
	s.Equal(RespHardOK, s.exec(id, "  hard\n"))
}

func (s *RouterSuite) TestStartTwiceIsRefused() {
	id := s.register()

	s.Equal(RespStartOK, s.exec(id, "start"))
	s.Equal(RespStartFailed, s.exec(id, "start"))
	s.Equal([]string{model.MsgLobbyCreated, model.MsgAlreadyQueued}, s.drain(id))
}

func (s *RouterSuite) TestMalformedInput() {
	id := s.register()

	s.Equal(RespTryHelp, s.exec(id, "take three"))
	s.Equal(RespTryHelp, s.exec(id, ""))
	s.Equal([]string{model.MsgNotAValidCommand, model.MsgNotAValidCommand}, s.drain(id))
}

func (s *RouterSuite) TestMoveOutsideMatch() {
	id := s.register()
	s.Equal(RespNotInMatch, s.exec(id, "1"))
	s.Equal(RespUnknownPlayer, s.exec(42, "1"))
}

func (s *RouterSuite) TestExitOutsideMatchStillResponds() {
	id := s.register()
	s.Equal(RespExited, s.exec(id, "exit"))
	s.Empty(s.drain(id))
}

func (s *RouterSuite) TestHumanMatchThroughCommands() {
	p1, p2 := s.register(), s.register()
	// pile of 6, player one moves first
	s.random.QueueIntn(4, 0)

	s.Equal(RespStartOK, s.exec(p1, "start"))
	s.Equal(RespStartOK, s.exec(p2, "start"))
	s.drain(p1)
	s.drain(p2)

	s.Equal(RespIllegalMove, s.exec(p2, "1"))
	s.Equal([]string{model.MsgNotYourTurn}, s.drain(p2))

	s.Equal(RespIllegalMove, s.exec(p1, "4"))
	s.Equal([]string{model.InvalidMoveMessage(6)}, s.drain(p1))

	s.Equal(RespMoveAccepted, s.exec(p1, "3"))
	s.Equal([]string{model.OpponentMovedMessage(3, 3)}, s.drain(p2))

	s.Equal(RespMoveAccepted, s.exec(p2, "1"))
	s.Equal(RespMoveAccepted, s.exec(p1, "1"))
	s.Equal(RespMoveAccepted, s.exec(p2, "1"))

	s.Equal([]string{
		model.MovePickedMessage(3),
		model.OpponentMovedMessage(1, 2),
		model.MovePickedMessage(1),
		model.OpponentMovedMessage(1, 0),
		model.MsgWon,
		model.MsgMatchEnded,
	}, s.drain(p1))
	s.Equal([]string{
		model.MovePickedMessage(1),
		model.OpponentMovedMessage(1, 1),
		model.MovePickedMessage(1),
		model.MsgLost,
		model.MsgMatchEnded,
	}, s.drain(p2))

	s.Equal(RespNotInMatch, s.exec(p1, "1"))
}

func (s *RouterSuite) TestExitGivesOpponentTheWin() {
	p1, p2 := s.register(), s.register()
	s.random.QueueIntn(8, 0)

	s.exec(p1, "start")
	s.exec(p2, "start")
	s.drain(p1)
	s.drain(p2)

	s.Equal(RespExited, s.exec(p1, "exit"))

	s.Equal([]string{model.MsgWon, model.MsgMatchEnded}, s.drain(p2))
	s.Equal([]string{model.MsgGaveUp, model.MsgLost, model.MsgMatchEnded}, s.drain(p1))
}

func TestParseMove(t *testing.T) {
	amount, err := parseMove("12")
	require.NoError(t, err)
	assert.Equal(t, 12, amount)

	amount, err = parseMove("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, amount)

	_, err = parseMove("twelve")
	assert.ErrorIs(t, err, model.ErrMalformedCommand)

	_, err = parseMove(strconv.Itoa(model.ForfeitMove))
	assert.ErrorIs(t, err, model.ErrMalformedCommand)
}
