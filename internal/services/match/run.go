package match

import (
	"context"
	"log/slog"

	"github.com/mcoot/nimgame-go/internal/model"
)

// Run is the match's scheduled unit. It blocks on lifecycle transitions,
// starts the computer opponent once one is seated, and calls onFinish
// exactly once when the match ends. It returns when the match finishes or
// ctx is cancelled.
func (e *Engine) Run(ctx context.Context, onFinish FinishFunc) {
	e.logger.Debug("match unit started")
	for {
		select {
		case state := <-e.transitions:
			snap := e.Snapshot()
			e.logger.Info("match transition",
				slog.String("state", string(state)),
				slog.Int("current_marbles", snap.CurrentMarbles),
			)

			switch state {
			case model.MatchStateInProgress:
				if snap.PlayerTwo.Kind == model.ParticipantStrategy {
					go e.playStrategy(ctx)
				}
			case model.MatchStateFinished:
				if onFinish != nil {
					onFinish(ctx, snap)
				}
				e.logger.Debug("match unit stopped")
				return
			}

		case <-ctx.Done():
			e.logger.Debug("match unit cancelled")
			return
		}
	}
}

// playStrategy waits for the turn to pass to the computer and plays its
// move. It exits when the match finishes.
func (e *Engine) playStrategy(ctx context.Context) {
	e.logger.Debug("strategy opponent started", slog.String("strategy", e.strategy.Name()))
	for {
		select {
		case <-e.cpuTurn:
			e.playStrategyTurn(ctx)
		case <-e.done:
			e.logger.Debug("strategy opponent stopped")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) playStrategyTurn(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := e.match
	if m.State != model.MatchStateInProgress || m.NextTurn != model.CPUPlayerID {
		return
	}

	amount := e.strategy.ChooseMove(m.CurrentMarbles)
	if err := e.apply(ctx, model.CPUPlayerID, amount); err != nil {
		// The move was rejected; fall back to a single marble so the match progresses
		e.logger.Warn("strategy move rejected",
			slog.Int("amount", amount),
			slog.String("error", err.Error()),
		)
		if err := e.apply(ctx, model.CPUPlayerID, 1); err != nil {
			e.logger.Error("fallback strategy move rejected", slog.String("error", err.Error()))
		}
	}
}
