package memory

import (
	"context"
	"sync"

	"github.com/mcoot/nimgame-go/internal/model"
	"github.com/mcoot/nimgame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	lastPlayerID model.PlayerID
	lastMatchID  model.MatchID

	players  map[model.PlayerID]*model.Player
	matches  map[model.MatchID]*model.Match
	messages map[model.PlayerID][]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:  make(map[model.PlayerID]*model.Player),
		matches:  make(map[model.MatchID]*model.Match),
		messages: make(map[model.PlayerID][]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPlayerID++
	return s.lastPlayerID, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

// Match snapshot operations

func (s *Storage) NextMatchID(ctx context.Context) (model.MatchID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMatchID++
	return s.lastMatchID, nil
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match.Clone()
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match.Clone(), nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

// Message queue operations

func (s *Storage) PushMessage(ctx context.Context, playerID model.PlayerID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[playerID] = append(s.messages[playerID], message)
	return nil
}

func (s *Storage) PopMessage(ctx context.Context, playerID model.PlayerID) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.messages[playerID]
	if len(queue) == 0 {
		return "", false, nil
	}
	msg := queue[0]
	if len(queue) == 1 {
		delete(s.messages, playerID)
	} else {
		s.messages[playerID] = queue[1:]
	}
	return msg, true, nil
}

func (s *Storage) PendingMessages(ctx context.Context, playerID model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages[playerID]), nil
}
