package strategy

// safeSizes holds 2^n - 1 for n = 1..10. Leaving the opponent one of these
// pile sizes is a winning position.
var safeSizes = func() [10]int {
	var sizes [10]int
	for i := range sizes {
		sizes[i] = (1 << (i + 1)) - 1
	}
	return sizes
}()

// OptimalMove computes the move that leaves the largest safe size s with
// n/2 <= s <= n-1, defaulting to 1 when none exists. When n is itself a
// safe size of at least 3 the result is not a legal move; callers playing
// the move must check legality.
func OptimalMove(currentMarbles int) int {
	if currentMarbles == 1 {
		return 1
	}
	move := 1
	for _, s := range safeSizes {
		if s >= currentMarbles/2 && s <= currentMarbles-1 {
			move = currentMarbles - s
		}
	}
	return move
}

// Optimal plays OptimalMove, falling back to a single marble from a safe size
type Optimal struct{}

// NewOptimal creates the optimal strategy
func NewOptimal() *Optimal {
	return &Optimal{}
}

// Name implements Strategy
func (o *Optimal) Name() string { return NameOptimal }

// ChooseMove implements Strategy
func (o *Optimal) ChooseMove(currentMarbles int) int {
	move := OptimalMove(currentMarbles)
	if !IsLegalMove(currentMarbles, move) {
		return 1
	}
	return move
}
