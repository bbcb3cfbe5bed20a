package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hand(cards ...string) Hand {
	h := make(Hand, 0, len(cards))
	for _, c := range cards {
		h = append(h, Card{Suit: Spades, Rank: Rank(c)})
	}
	return h
}

func TestBestTotal(t *testing.T) {
	tests := []struct {
		name  string
		hand  Hand
		total int
	}{
		{"simple", hand("2", "3"), 5},
		{"faces count ten", hand("J", "Q", "K"), 30},
		{"ace high", hand("A", "K"), 21},
		{"ace drops to one", hand("A", "K", "5"), 16},
		{"two aces", hand("A", "A"), 12},
		{"two aces with nine", hand("A", "A", "9"), 21},
		{"four aces", hand("A", "A", "A", "A"), 14},
		{"bust", hand("K", "Q", "5"), 25},
		{"ace cannot save bust", hand("A", "K", "Q", "5"), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.total, tt.hand.BestTotal())
		})
	}
}

func TestBestTotalAceReduction(t *testing.T) {
	// With at least one ace and an unflexed total <= 31 the reduction always
	// lands at or below 21.
	for _, h := range []Hand{
		hand("A", "K"), hand("A", "K", "10"), hand("A", "9", "A"),
		hand("A", "5", "5", "K"), hand("A", "A", "9", "10"),
	} {
		unflexed := 0
		for _, c := range h {
			unflexed += c.Value()
		}
		if unflexed <= 31 {
			assert.LessOrEqual(t, h.BestTotal(), 21, "hand %v", h)
		}
	}
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, hand("A", "K").IsBlackjack())
	assert.True(t, hand("10", "A").IsBlackjack())
	assert.False(t, hand("10", "9").IsBlackjack())
	assert.False(t, hand("A", "5", "5").IsBlackjack(), "three-card 21 is not a natural")
	assert.False(t, hand("A").IsBlackjack())
}

func TestIsBust(t *testing.T) {
	assert.False(t, hand("K", "Q").IsBust())
	assert.False(t, hand("A", "K", "Q").IsBust())
	assert.True(t, hand("K", "Q", "2").IsBust())
}

func TestIsSoft(t *testing.T) {
	assert.True(t, hand("A", "6").IsSoft())
	assert.False(t, hand("A", "6", "K").IsSoft(), "ace forced to one")
	assert.False(t, hand("10", "7").IsSoft())
}
