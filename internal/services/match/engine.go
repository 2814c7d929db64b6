package match

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/nimgame-go/internal/dependencies/clock"
	"github.com/mcoot/nimgame-go/internal/dependencies/random"
	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/services/strategy"
	"github.com/mcoot/nimgame-go/internal/storage"
)

// FinishFunc is invoked once by Run after the match reaches its terminal state
type FinishFunc func(ctx context.Context, final *model.Match)

// Engine owns the state of a single match. Every mutation and the
// notifications it produces happen under the engine lock, so each
// player's queue receives messages in event order.
type Engine struct {
	mu    sync.Mutex
	match *model.Match

	storage  storage.Storage
	strategy strategy.Strategy
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	transitions chan model.MatchState
	cpuTurn     chan struct{}
	done        chan struct{}
	finishOnce  sync.Once
}

// NewEngine creates a match awaiting an opponent, owned by player one.
// The starting pile is drawn from the owner's difficulty range.
func NewEngine(
	id model.MatchID,
	owner *model.Player,
	store storage.Storage,
	strat strategy.Strategy,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Engine {
	lo, hi := owner.Difficulty.MarbleRange()
	total := random.Between(rnd, lo, hi)
	now := clk.Now()

	return &Engine{
		match: &model.Match{
			ID:             id,
			PlayerOne:      model.HumanParticipant(owner.ID),
			Difficulty:     owner.Difficulty,
			TotalMarbles:   total,
			CurrentMarbles: total,
			State:          model.MatchStateAwaitingOpponent,
			Moves:          []model.Move{},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		storage:  store,
		strategy: strat,
		clock:    clk,
		random:   rnd,
		logger: logger.With(
			slog.String("component", "match"),
			slog.Int("match_id", int(id)),
		),
		// At most two transitions are ever signalled: paired and finished
		transitions: make(chan model.MatchState, 2),
		cpuTurn:     make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
}

// ID returns the match identifier
func (e *Engine) ID() model.MatchID {
	return e.match.ID
}

// Snapshot returns a deep copy of the current match state
func (e *Engine) Snapshot() *model.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.Clone()
}

// Done is closed when the match finishes
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// IsFinished reports whether the match has reached its terminal state
func (e *Engine) IsFinished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.IsFinished()
}

// IsAwaitingOpponent reports whether a second human may still join
func (e *Engine) IsAwaitingOpponent(difficulty model.Difficulty) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.State == model.MatchStateAwaitingOpponent && e.match.Difficulty == difficulty
}

// IsMyTurn reports whether the player is the one to move
func (e *Engine) IsMyTurn(playerID model.PlayerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.State == model.MatchStateInProgress && e.match.NextTurn == playerID
}

// Persist writes the current snapshot to storage
func (e *Engine) Persist(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.storage.SaveMatch(ctx, e.match)
}

// Join seats a second human and starts the match
func (e *Engine) Join(ctx context.Context, playerID model.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.match.State != model.MatchStateAwaitingOpponent {
		return fmt.Errorf("join match %d: %w", e.match.ID, model.ErrMatchNotJoinable)
	}
	if e.match.PlayerOne.PlayerID == playerID {
		return fmt.Errorf("join match %d: %w", e.match.ID, model.ErrAlreadyQueued)
	}

	e.match.PlayerTwo = model.HumanParticipant(playerID)
	e.begin(ctx)
	return nil
}

// StartAgainstStrategy seats the computer opponent and starts the match.
// The opponent plays from the goroutine started by Run.
func (e *Engine) StartAgainstStrategy(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.match.State != model.MatchStateAwaitingOpponent {
		return fmt.Errorf("start match %d: %w", e.match.ID, model.ErrMatchNotJoinable)
	}

	e.match.PlayerTwo = model.StrategyParticipant()
	e.notify(ctx, e.match.PlayerOne, model.MsgCPUMatchStarted)
	e.begin(ctx)
	return nil
}

// begin flips for the first mover and announces the match. Caller holds the lock.
func (e *Engine) begin(ctx context.Context) {
	first, second := e.match.PlayerOne, e.match.PlayerTwo
	if !random.Coin(e.random) {
		first, second = second, first
	}

	e.match.NextTurn = first.PlayerID
	e.match.State = model.MatchStateInProgress
	e.match.UpdatedAt = e.clock.Now()

	found := model.MatchFoundMessage(e.match.TotalMarbles)
	for _, p := range e.match.Participants() {
		e.notify(ctx, p, found)
	}
	e.notify(ctx, first, model.MsgYourTurn)
	e.notify(ctx, second, model.MsgOtherTurn)

	e.logger.Info("match started",
		slog.Int("total_marbles", e.match.TotalMarbles),
		slog.Int("first_mover", int(first.PlayerID)),
	)

	e.persist(ctx)
	e.signal(model.MatchStateInProgress)
	if first.Kind == model.ParticipantStrategy {
		e.wakeStrategy()
	}
}

// Move applies a move for the player. amount == model.ForfeitMove forfeits
// regardless of turn. Rejected moves leave the match unchanged and queue an
// explanation for the player.
func (e *Engine) Move(ctx context.Context, playerID model.PlayerID, amount int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(ctx, playerID, amount)
}

// Forfeit ends the match with the player as loser
func (e *Engine) Forfeit(ctx context.Context, playerID model.PlayerID) error {
	return e.Move(ctx, playerID, model.ForfeitMove)
}

// apply validates and applies a move. Caller holds the lock.
func (e *Engine) apply(ctx context.Context, playerID model.PlayerID, amount int) error {
	m := e.match

	if m.IsFinished() {
		return fmt.Errorf("move in match %d: %w", m.ID, model.ErrMatchFinished)
	}
	if !m.HasParticipant(playerID) {
		return fmt.Errorf("move in match %d: %w", m.ID, model.ErrNotInMatch)
	}

	mover := e.seat(playerID)

	if amount == model.ForfeitMove {
		e.notify(ctx, mover, model.MsgGaveUp)
		m.CurrentMarbles = 0
		m.Forfeited = true
		e.finish(ctx, playerID)
		return nil
	}

	if m.State != model.MatchStateInProgress || m.NextTurn != playerID {
		e.notify(ctx, mover, model.MsgNotYourTurn)
		return fmt.Errorf("move in match %d: %w", m.ID, model.ErrNotPlayerTurn)
	}

	if !strategy.IsLegalMove(m.CurrentMarbles, amount) {
		e.notify(ctx, mover, model.InvalidMoveMessage(m.CurrentMarbles))
		return fmt.Errorf("move %d from %d in match %d: %w", amount, m.CurrentMarbles, m.ID, model.ErrIllegalMove)
	}

	opponent := m.Opponent(playerID)
	m.CurrentMarbles -= amount
	m.Moves = append(m.Moves, model.Move{PlayerID: playerID, Amount: amount})
	m.NextTurn = opponent.PlayerID
	m.UpdatedAt = e.clock.Now()

	if mover.Kind == model.ParticipantStrategy {
		e.notify(ctx, opponent, model.CPUMovedMessage(amount, m.CurrentMarbles))
	} else {
		e.notify(ctx, mover, model.MovePickedMessage(amount))
		e.notify(ctx, opponent, model.OpponentMovedMessage(amount, m.CurrentMarbles))
	}

	e.logger.Debug("move applied",
		slog.Int("player_id", int(playerID)),
		slog.Int("amount", amount),
		slog.Int("remaining", m.CurrentMarbles),
	)

	if m.CurrentMarbles <= 0 {
		e.finish(ctx, playerID)
		return nil
	}

	e.persist(ctx)
	if opponent.Kind == model.ParticipantStrategy {
		e.wakeStrategy()
	}
	return nil
}

// finish moves the match to its terminal state with loser as the player who
// took the last marble or forfeited. A match abandoned before pairing has
// no winner. Caller holds the lock.
func (e *Engine) finish(ctx context.Context, loser model.PlayerID) {
	m := e.match
	paired := m.PlayerTwo.IsSet()

	m.State = model.MatchStateFinished
	m.Loser = loser
	m.UpdatedAt = e.clock.Now()
	m.FinishedAt = m.UpdatedAt

	if paired {
		winner := m.Opponent(loser)
		m.Winner = winner.PlayerID
		m.NextTurn = winner.PlayerID
		e.notify(ctx, winner, model.MsgWon)
		e.notify(ctx, e.seat(loser), model.MsgLost)
	}
	for _, p := range m.Participants() {
		e.notify(ctx, p, model.MsgMatchEnded)
	}

	e.logger.Info("match finished",
		slog.Int("winner", int(m.Winner)),
		slog.Int("loser", int(m.Loser)),
		slog.Bool("forfeited", m.Forfeited),
		slog.Int("moves", len(m.Moves)),
	)

	e.persist(ctx)
	e.finishOnce.Do(func() {
		close(e.done)
		e.signal(model.MatchStateFinished)
	})
}

// seat returns the participant holding playerID. Caller holds the lock.
func (e *Engine) seat(playerID model.PlayerID) model.Participant {
	if e.match.PlayerOne.PlayerID == playerID {
		return e.match.PlayerOne
	}
	return e.match.PlayerTwo
}

// notify queues a message for a human participant. Messages for the
// strategy seat are dropped. Caller holds the lock.
func (e *Engine) notify(ctx context.Context, p model.Participant, message string) {
	if !p.IsHuman() {
		return
	}
	// Queue writes must survive the caller's request being cancelled
	if err := e.storage.PushMessage(context.WithoutCancel(ctx), p.PlayerID, message); err != nil {
		e.logger.Error("failed to queue message",
			slog.Int("player_id", int(p.PlayerID)),
			slog.String("error", err.Error()),
		)
	}
}

// persist saves the snapshot, logging failures. Caller holds the lock.
func (e *Engine) persist(ctx context.Context) {
	if err := e.storage.SaveMatch(context.WithoutCancel(ctx), e.match); err != nil {
		e.logger.Error("failed to save match", slog.String("error", err.Error()))
	}
}

func (e *Engine) signal(state model.MatchState) {
	select {
	case e.transitions <- state:
	default:
		e.logger.Warn("match transition dropped", slog.String("state", string(state)))
	}
}

func (e *Engine) wakeStrategy() {
	select {
	case e.cpuTurn <- struct{}{}:
	default:
	}
}
