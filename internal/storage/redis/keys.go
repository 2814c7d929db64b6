package redis

import (
	"fmt"

	"github.com/mcoot/nimgame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "nimgame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, int(id))
}

// matchKey returns the Redis key for a Match snapshot
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%d", keyPrefix, int(id))
}

// messagesKey returns the Redis key for a player's message LIST
func messagesKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:messages:%d", keyPrefix, int(id))
}

// playerSeqKey returns the Redis key of the player ID counter
func playerSeqKey() string {
	return fmt.Sprintf("%s:seq:player", keyPrefix)
}

// matchSeqKey returns the Redis key of the match ID counter
func matchSeqKey() string {
	return fmt.Sprintf("%s:seq:match", keyPrefix)
}
