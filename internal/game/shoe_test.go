package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoe(t *testing.T) {
	shoe, err := NewShoe(6, 50, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, 312, shoe.Remaining())
	assert.False(t, shoe.NeedsReshuffle())
}

func TestNewShoeValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewShoe(0, 50, rng)
	assert.Error(t, err)

	_, err = NewShoe(1, 9, rng)
	assert.Error(t, err, "threshold below range")

	_, err = NewShoe(1, 101, rng)
	assert.Error(t, err, "threshold above range")

	_, err = NewShoe(1, 10, rng)
	assert.NoError(t, err)
	_, err = NewShoe(1, 100, rng)
	assert.NoError(t, err)
}

func TestShoeDealOne(t *testing.T) {
	shoe, err := NewShoe(1, 10, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	seen := make(map[Card]int)
	for i := 0; i < 52; i++ {
		card, err := shoe.DealOne()
		require.NoError(t, err)
		seen[card]++
	}

	assert.Equal(t, 0, shoe.Remaining())
	assert.Len(t, seen, 52, "single deck deals every card exactly once")

	_, err = shoe.DealOne()
	assert.ErrorIs(t, err, ErrShoeExhausted)
}

func TestShoeNeedsReshuffle(t *testing.T) {
	shoe, err := NewShoe(1, 50, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// Deal down to exactly threshold remaining: not yet due.
	for shoe.Remaining() > 50 {
		_, err := shoe.DealOne()
		require.NoError(t, err)
	}
	assert.False(t, shoe.NeedsReshuffle())

	_, err = shoe.DealOne()
	require.NoError(t, err)
	assert.Equal(t, 49, shoe.Remaining())
	assert.True(t, shoe.NeedsReshuffle())

	shoe.Reshuffle()
	assert.Equal(t, 52, shoe.Remaining())
	assert.False(t, shoe.NeedsReshuffle())
}

func TestShoeShuffleIsSeeded(t *testing.T) {
	a, err := NewShoe(1, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := NewShoe(1, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	for i := 0; i < 52; i++ {
		ca, err := a.DealOne()
		require.NoError(t, err)
		cb, err := b.DealOne()
		require.NoError(t, err)
		assert.Equal(t, ca, cb)
	}
}
