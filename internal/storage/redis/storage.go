package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	id, err := s.client.Incr(ctx, playerSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.PlayerID(id), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Match snapshot operations

func (s *Storage) NextMatchID(ctx context.Context) (model.MatchID, error) {
	id, err := s.client.Incr(ctx, matchSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.MatchID(id), nil
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL).Err()
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	return s.client.Del(ctx, matchKey(id)).Err()
}

// Message queue operations

func (s *Storage) PushMessage(ctx context.Context, playerID model.PlayerID, message string) error {
	key := messagesKey(playerID)

	// Append and refresh expiry together
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	if s.cfg.MessageTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.MessageTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) PopMessage(ctx context.Context, playerID model.PlayerID) (string, bool, error) {
	msg, err := s.client.LPop(ctx, messagesKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return msg, true, nil
}

func (s *Storage) PendingMessages(ctx context.Context, playerID model.PlayerID) (int, error) {
	n, err := s.client.LLen(ctx, messagesKey(playerID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
