package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/nimgame-go/internal/dependencies/mocks"
	"github.com/mcoot/nimgame-go/internal/dependencies/random"
)

func TestCryptoRandomIntnStaysInRange(t *testing.T) {
	r := random.New()
	for i := 0; i < 500; i++ {
		v := r.Intn(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestBetweenIsInclusive(t *testing.T) {
	m := mocks.NewMockRandom()
	m.QueueIntn(0, 18, 99)

	assert.Equal(t, 2, random.Between(m, 2, 20))
	assert.Equal(t, 20, random.Between(m, 2, 20))
	// clamped by the mock to Intn(19) - 1
	assert.Equal(t, 20, random.Between(m, 2, 20))
	assert.Equal(t, 5, random.Between(m, 5, 5))
}

func TestCoin(t *testing.T) {
	m := mocks.NewMockRandom()
	m.QueueIntn(0, 1)

	assert.True(t, random.Coin(m))
	assert.False(t, random.Coin(m))
}
