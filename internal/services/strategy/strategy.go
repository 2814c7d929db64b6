package strategy

import (
	"fmt"
	"sort"

	"github.com/mcoot/nimgame-go/internal/dependencies/random"
)

// Names of the built-in strategies
const (
	NameOptimal = "optimal"
	NameRandom  = "random"
)

// Strategy chooses how many marbles the computer opponent removes
type Strategy interface {
	// Name identifies the strategy in configuration and logs
	Name() string
	// ChooseMove returns a legal amount to remove from a non-empty pile
	ChooseMove(currentMarbles int) int
}

// IsLegalMove reports whether amount may be removed from a pile of current.
// The last marble may always be taken; otherwise a move removes between
// one and half of the pile.
func IsLegalMove(current, amount int) bool {
	if amount == 1 && current == 1 {
		return true
	}
	return amount >= 1 && amount <= current/2
}

// Registry returns the built-in strategies keyed by name
func Registry(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		NameOptimal: NewOptimal(),
		NameRandom:  NewRandom(rnd),
	}
}

// Lookup resolves a strategy by name. An empty name selects the optimal strategy.
func Lookup(strategies map[string]Strategy, name string) (Strategy, error) {
	if name == "" {
		name = NameOptimal
	}
	s, ok := strategies[name]
	if !ok {
		known := make([]string, 0, len(strategies))
		for k := range strategies {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown strategy %q (known: %v)", name, known)
	}
	return s, nil
}
