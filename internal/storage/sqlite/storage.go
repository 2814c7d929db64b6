package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// Players and match snapshots are stored as JSON documents.
type Storage struct {
	db *sql.DB
}

// New opens the database and creates the schema if needed
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection serialises writers and keeps ":memory:" databases alive
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds()),
	}
	for _, p := range append(pragmas, schema...) {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initialise database: %w", err)
		}
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) nextID(ctx context.Context, name string) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1
		 RETURNING value`,
		name,
	).Scan(&id)
	return id, err
}

func (s *Storage) putDocument(ctx context.Context, table string, id int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		id, string(data),
	)
	return err
}

// getDocument decodes the row into v, returning notFound if it is missing
func (s *Storage) getDocument(ctx context.Context, table string, id int, v any, notFound error) error {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM `+table+` WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), v)
}

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	id, err := s.nextID(ctx, seqPlayers)
	return model.PlayerID(id), err
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	return s.putDocument(ctx, "players", int(player.ID), player)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getDocument(ctx, "players", int(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

// Match snapshot operations

func (s *Storage) NextMatchID(ctx context.Context) (model.MatchID, error) {
	id, err := s.nextID(ctx, seqMatches)
	return model.MatchID(id), err
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	return s.putDocument(ctx, "matches", int(match.ID), match)
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var match model.Match
	if err := s.getDocument(ctx, "matches", int(id), &match, model.ErrMatchNotFound); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, int(id))
	return err
}

// Message queue operations

func (s *Storage) PushMessage(ctx context.Context, playerID model.PlayerID, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (player_id, body) VALUES (?, ?)`,
		int(playerID), message,
	)
	return err
}

func (s *Storage) PopMessage(ctx context.Context, playerID model.PlayerID) (string, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM messages
		 WHERE seq = (SELECT seq FROM messages WHERE player_id = ? ORDER BY seq LIMIT 1)
		 RETURNING body`,
		int(playerID),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

func (s *Storage) PendingMessages(ctx context.Context, playerID model.PlayerID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE player_id = ?`,
		int(playerID),
	).Scan(&n)
	return n, err
}
