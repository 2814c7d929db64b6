package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/services/directory"
)

// Response strings returned synchronously to the caller.
const (
	RespStartOK         = "You will be matched."
	RespStartFailed     = "Error assigning you to a match"
	RespHumanOK         = "Successfully selected Human mode for your next game."
	RespHumanFailed     = "Error when selecting Human mode."
	RespCPUOK           = "Successfully selected CPU mode for your next game."
	RespCPUFailed       = "Error when selecting CPU mode."
	RespExited          = "Exited from game."
	RespHardOK          = "Hard mode chosen."
	RespHardFailed      = "Error choosing hard mode."
	RespEasyOK          = "Easy mode chosen."
	RespEasyFailed      = "Error choosing easy mode."
	RespIllegalMove     = "Illegal move, try again."
	RespNotInMatch      = "You are not currently in a match."
	RespUnknownPlayer   = "Unknown player."
	RespTryHelp         = `Try typing "help"`
	RespMoveAccepted    = ""
	RespInternalFailure = "Something went wrong, try again."
)

// Router maps command text onto directory operations
type Router struct {
	directory *directory.Directory
	logger    *slog.Logger
}

// NewRouter creates a new Router
func NewRouter(dir *directory.Directory, logger *slog.Logger) *Router {
	return &Router{
		directory: dir,
		logger:    logger.With(slog.String("component", "command")),
	}
}

// HelpText lists every command with its description, one per line
func HelpText() string {
	lines := make([]string, 0, len(model.Commands))
	for _, c := range model.Commands {
		lines = append(lines, c.Description())
	}
	return strings.Join(lines, "\n")
}

// ExecuteCommand runs one line of player input and returns the response.
// Failures never escape as errors; they are reported in the response text
// or through the player's message queue.
func (r *Router) ExecuteCommand(ctx context.Context, playerID model.PlayerID, text string) string {
	input := strings.TrimSpace(text)
	logger := r.logger.With(
		slog.Int("player_id", int(playerID)),
		slog.String("command", input),
	)

	switch model.Command(input) {
	case model.CommandHelp:
		return HelpText()

	case model.CommandStart:
		if err := r.directory.StartMatchmaking(ctx, playerID); err != nil {
			logger.Info("matchmaking refused", slog.String("error", err.Error()))
			return RespStartFailed
		}
		return RespStartOK

	case model.CommandHuman:
		return r.respond(logger, r.directory.SetMode(ctx, playerID, model.ModeHuman), RespHumanOK, RespHumanFailed)

	case model.CommandCPU:
		return r.respond(logger, r.directory.SetMode(ctx, playerID, model.ModeCPU), RespCPUOK, RespCPUFailed)

	case model.CommandHard:
		return r.respond(logger, r.directory.SetDifficulty(ctx, playerID, model.DifficultyHard), RespHardOK, RespHardFailed)

	case model.CommandEasy:
		return r.respond(logger, r.directory.SetDifficulty(ctx, playerID, model.DifficultyEasy), RespEasyOK, RespEasyFailed)

	case model.CommandExit:
		if err := r.directory.Forfeit(ctx, playerID); err != nil {
			logger.Debug("exit outside a match", slog.String("error", err.Error()))
		}
		return RespExited
	}

	amount, err := parseMove(input)
	if err != nil {
		logger.Debug("unrecognised input", slog.String("error", err.Error()))
		r.directory.QueueMessage(ctx, playerID, model.MsgNotAValidCommand)
		return RespTryHelp
	}
	return r.move(ctx, logger, playerID, amount)
}

// parseMove reads a bare decimal move amount. The forfeit sentinel is only
// reachable through exit.
func parseMove(input string) (int, error) {
	amount, err := strconv.Atoi(input)
	if err != nil || amount == model.ForfeitMove {
		return 0, fmt.Errorf("%w: %q", model.ErrMalformedCommand, input)
	}
	return amount, nil
}

func (r *Router) move(ctx context.Context, logger *slog.Logger, playerID model.PlayerID, amount int) string {
	err := r.directory.SubmitMove(ctx, playerID, amount)
	switch {
	case err == nil:
		return RespMoveAccepted
	case errors.Is(err, model.ErrPlayerNotFound):
		return RespUnknownPlayer
	case errors.Is(err, model.ErrNotInMatch):
		return RespNotInMatch
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrNotPlayerTurn),
		errors.Is(err, model.ErrMatchFinished):
		return RespIllegalMove
	default:
		logger.Error("move failed", slog.Int("amount", amount), slog.String("error", err.Error()))
		return RespInternalFailure
	}
}

func (r *Router) respond(logger *slog.Logger, err error, ok, failed string) string {
	if err != nil {
		logger.Info("command failed", slog.String("error", err.Error()))
		return failed
	}
	return ok
}
