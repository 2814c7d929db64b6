package storage

import (
	"context"

	"github.com/mcoot/nimgame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	NextPlayerID(ctx context.Context) (model.PlayerID, error)
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Match snapshot operations
	NextMatchID(ctx context.Context) (model.MatchID, error)
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error

	// Message queue operations. Queues are FIFO per player; PopMessage
	// reports false when the queue is empty.
	PushMessage(ctx context.Context, playerID model.PlayerID, message string) error
	PopMessage(ctx context.Context, playerID model.PlayerID) (string, bool, error)
	PendingMessages(ctx context.Context, playerID model.PlayerID) (int, error)
}
