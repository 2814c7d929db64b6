package mocks

import (
	"sync"

	"github.com/mcoot/nimgame-go/internal/dependencies/random"
)

// MockRandom returns queued values from Intn. Match goroutines draw from
// it concurrently with the test, so access is serialized.
type MockRandom struct {
	mu      sync.Mutex
	results []int
	index   int

	// Fallback is returned once the queue is exhausted
	Fallback int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result clamped to [0, n), or Fallback if none remain
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.Fallback
	if r.index < len(r.results) {
		result = r.results[r.index]
		r.index++
	}
	if n <= 0 {
		return 0
	}
	if result >= n {
		result = n - 1
	}
	if result < 0 {
		result = 0
	}
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, values...)
}

// Remaining returns how many queued values have not been drawn
func (r *MockRandom) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results) - r.index
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = nil
	r.index = 0
}
