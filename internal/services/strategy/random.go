package strategy

import "github.com/mcoot/nimgame-go/internal/dependencies/random"

// Random picks a uniformly random legal move
type Random struct {
	random random.Random
}

// NewRandom creates a new Random strategy
func NewRandom(rnd random.Random) *Random {
	return &Random{random: rnd}
}

// Name implements Strategy
func (r *Random) Name() string { return NameRandom }

// ChooseMove implements Strategy
func (r *Random) ChooseMove(currentMarbles int) int {
	limit := currentMarbles / 2
	if limit < 1 {
		return 1
	}
	return random.Between(r.random, 1, limit)
}
