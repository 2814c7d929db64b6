package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/nimgame-go/internal/dependencies/clock"
	"github.com/mcoot/nimgame-go/internal/dependencies/random"
	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/services/match"
	"github.com/mcoot/nimgame-go/internal/services/strategy"
	"github.com/mcoot/nimgame-go/internal/storage"
)

// RetentionPolicy decides what happens to a match once it finishes
type RetentionPolicy string

const (
	// RetentionKeep leaves finished matches registered and stored
	RetentionKeep RetentionPolicy = "keep"
	// RetentionReclaim drops finished matches from the registry and storage
	RetentionReclaim RetentionPolicy = "reclaim"
)

// Valid reports whether p is a known policy
func (p RetentionPolicy) Valid() bool {
	return p == RetentionKeep || p == RetentionReclaim
}

// Directory registers players and pairs them into matches. It owns the
// live match engines and runs one scheduled unit per match.
type Directory struct {
	mu sync.Mutex

	storage     storage.Storage
	strategy    strategy.Strategy
	clock       clock.Clock
	random      random.Random
	retention   RetentionPolicy
	logger      *slog.Logger
	matchLogger *slog.Logger

	// Live engines in creation order, indexed by ID
	matches []*match.Engine
	byID    map[model.MatchID]*match.Engine
	// Matches still waiting for a second human, in creation order
	waiting []*match.Engine
	// Each player's current match
	active map[model.PlayerID]*match.Engine

	runCtx context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Directory. Match units run until Shutdown is called.
func New(
	store storage.Storage,
	strat strategy.Strategy,
	clk clock.Clock,
	rnd random.Random,
	retention RetentionPolicy,
	logger *slog.Logger,
) *Directory {
	if !retention.Valid() {
		retention = RetentionKeep
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Directory{
		storage:     store,
		strategy:    strat,
		clock:       clk,
		random:      rnd,
		retention:   retention,
		logger:      logger.With(slog.String("component", "directory")),
		matchLogger: logger,
		byID:        make(map[model.MatchID]*match.Engine),
		active:      make(map[model.PlayerID]*match.Engine),
		runCtx:      ctx,
		cancel:      cancel,
	}
}

// RegisterPlayer creates a player with default preferences and returns its ID
func (d *Directory) RegisterPlayer(ctx context.Context) (model.PlayerID, error) {
	id, err := d.storage.NextPlayerID(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrRegistrationFailed, err)
	}

	player := model.NewPlayer(id, d.clock.Now())
	if err := d.storage.SavePlayer(ctx, player); err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrRegistrationFailed, err)
	}

	d.logger.Info("player registered", slog.Int("player_id", int(id)))
	return id, nil
}

// GetPlayer retrieves a registered player
func (d *Directory) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return d.storage.GetPlayer(ctx, id)
}

// SetMode records the opponent kind for the player's next match
func (d *Directory) SetMode(ctx context.Context, id model.PlayerID, mode model.Mode) error {
	if !mode.Valid() {
		return model.ErrInvalidMode
	}
	return d.updatePlayer(ctx, id, func(p *model.Player) { p.Mode = mode })
}

// SetDifficulty records the difficulty for the player's next match
func (d *Directory) SetDifficulty(ctx context.Context, id model.PlayerID, difficulty model.Difficulty) error {
	if !difficulty.Valid() {
		return model.ErrInvalidDifficulty
	}
	return d.updatePlayer(ctx, id, func(p *model.Player) { p.Difficulty = difficulty })
}

func (d *Directory) updatePlayer(ctx context.Context, id model.PlayerID, update func(p *model.Player)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, err := d.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}
	update(player)
	player.UpdatedAt = d.clock.Now()
	return d.storage.SavePlayer(ctx, player)
}

// StartMatchmaking places the player into a match according to their
// preferences. A player already in an unfinished match is refused.
func (d *Directory) StartMatchmaking(ctx context.Context, id model.PlayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, err := d.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	if d.activeEngine(id) != nil {
		d.push(ctx, id, model.MsgAlreadyQueued)
		return model.ErrAlreadyQueued
	}

	if player.Mode == model.ModeCPU {
		d.push(ctx, id, model.MsgCPUGameStarted)
		e, err := d.createMatch(ctx, player)
		if err != nil {
			return err
		}
		return e.StartAgainstStrategy(ctx)
	}

	for _, e := range d.waiting {
		if !e.IsAwaitingOpponent(player.Difficulty) {
			continue
		}
		d.push(ctx, id, model.MsgLobbyAssigned)
		if err := e.Join(ctx, id); err != nil {
			return err
		}
		d.active[id] = e
		d.removeWaiting(e.ID())
		d.logger.Info("player paired",
			slog.Int("player_id", int(id)),
			slog.Int("match_id", int(e.ID())),
		)
		return nil
	}

	d.push(ctx, id, model.MsgLobbyCreated)
	e, err := d.createMatch(ctx, player)
	if err != nil {
		return err
	}
	d.waiting = append(d.waiting, e)
	return nil
}

// SubmitMove routes a move into the player's current match
func (d *Directory) SubmitMove(ctx context.Context, id model.PlayerID, amount int) error {
	e, err := d.currentEngine(ctx, id)
	if err != nil {
		return err
	}
	return e.Move(ctx, id, amount)
}

// Forfeit gives up the player's current match
func (d *Directory) Forfeit(ctx context.Context, id model.PlayerID) error {
	e, err := d.currentEngine(ctx, id)
	if err != nil {
		return err
	}
	return e.Forfeit(ctx, id)
}

// NextMessage pops the oldest queued message for the player, or "" if none
func (d *Directory) NextMessage(ctx context.Context, id model.PlayerID) (string, error) {
	if _, err := d.storage.GetPlayer(ctx, id); err != nil {
		return "", err
	}
	msg, _, err := d.storage.PopMessage(ctx, id)
	return msg, err
}

// PendingMessages returns how many messages are waiting for the player
func (d *Directory) PendingMessages(ctx context.Context, id model.PlayerID) (int, error) {
	if _, err := d.storage.GetPlayer(ctx, id); err != nil {
		return 0, err
	}
	return d.storage.PendingMessages(ctx, id)
}

// QueueMessage appends a message to a registered player's queue
func (d *Directory) QueueMessage(ctx context.Context, id model.PlayerID, message string) {
	if _, err := d.storage.GetPlayer(ctx, id); err != nil {
		return
	}
	d.push(ctx, id, message)
}

// ActiveMatch returns a snapshot of the player's unfinished match
func (d *Directory) ActiveMatch(ctx context.Context, id model.PlayerID) (*model.Match, error) {
	e, err := d.currentEngine(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.Snapshot(), nil
}

// GetMatch returns a live snapshot, falling back to storage for matches
// no longer registered
func (d *Directory) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	d.mu.Lock()
	e, ok := d.byID[id]
	d.mu.Unlock()
	if ok {
		return e.Snapshot(), nil
	}
	return d.storage.GetMatch(ctx, id)
}

// MatchCount returns the number of registered matches
func (d *Directory) MatchCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.matches)
}

// Shutdown stops all match units and waits for them to return
func (d *Directory) Shutdown(ctx context.Context) error {
	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("match units stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// currentEngine returns the player's unfinished match, distinguishing an
// unknown player from one who is simply not playing
func (d *Directory) currentEngine(ctx context.Context, id model.PlayerID) (*match.Engine, error) {
	d.mu.Lock()
	e := d.activeEngine(id)
	d.mu.Unlock()
	if e != nil {
		return e, nil
	}

	if _, err := d.storage.GetPlayer(ctx, id); err != nil {
		return nil, err
	}
	return nil, model.ErrNotInMatch
}

// activeEngine returns the player's unfinished match or nil. Caller holds d.mu.
func (d *Directory) activeEngine(id model.PlayerID) *match.Engine {
	e, ok := d.active[id]
	if !ok || e.IsFinished() {
		return nil
	}
	return e
}

// createMatch registers a new engine for the player and starts its unit.
// Caller holds d.mu.
func (d *Directory) createMatch(ctx context.Context, player *model.Player) (*match.Engine, error) {
	id, err := d.storage.NextMatchID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate match id: %w", err)
	}

	e := match.NewEngine(id, player, d.storage, d.strategy, d.clock, d.random, d.matchLogger)
	if err := e.Persist(ctx); err != nil {
		return nil, fmt.Errorf("save match %d: %w", id, err)
	}

	d.matches = append(d.matches, e)
	d.byID[id] = e
	d.active[player.ID] = e

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		e.Run(d.runCtx, d.onMatchFinished)
	}()

	d.logger.Info("match created",
		slog.Int("match_id", int(id)),
		slog.Int("player_id", int(player.ID)),
		slog.String("mode", string(player.Mode)),
		slog.String("difficulty", string(player.Difficulty)),
	)
	return e, nil
}

// onMatchFinished releases the participants and applies the retention policy
func (d *Directory) onMatchFinished(ctx context.Context, final *model.Match) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range final.Participants() {
		if e, ok := d.active[p.PlayerID]; ok && e.ID() == final.ID {
			delete(d.active, p.PlayerID)
		}
	}
	d.removeWaiting(final.ID)

	if d.retention != RetentionReclaim {
		return
	}

	delete(d.byID, final.ID)
	for i, e := range d.matches {
		if e.ID() == final.ID {
			d.matches = append(d.matches[:i], d.matches[i+1:]...)
			break
		}
	}
	if err := d.storage.DeleteMatch(context.WithoutCancel(ctx), final.ID); err != nil && !errors.Is(err, model.ErrMatchNotFound) {
		d.logger.Error("failed to delete finished match",
			slog.Int("match_id", int(final.ID)),
			slog.String("error", err.Error()),
		)
	}
	d.logger.Debug("finished match reclaimed", slog.Int("match_id", int(final.ID)))
}

// removeWaiting drops a match from the waiting list. Caller holds d.mu.
func (d *Directory) removeWaiting(id model.MatchID) {
	for i, e := range d.waiting {
		if e.ID() == id {
			d.waiting = append(d.waiting[:i], d.waiting[i+1:]...)
			return
		}
	}
}

// push queues a message, logging failures
func (d *Directory) push(ctx context.Context, id model.PlayerID, message string) {
	if err := d.storage.PushMessage(ctx, id, message); err != nil {
		d.logger.Error("failed to queue message",
			slog.Int("player_id", int(id)),
			slog.String("error", err.Error()),
		)
	}
}
