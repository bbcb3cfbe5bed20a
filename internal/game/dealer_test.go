package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stackedSource deals a fixed card sequence in order.
type stackedSource struct {
	cards []Card
	next  int
}

func stacked(cards ...string) *stackedSource {
	s := &stackedSource{}
	for _, c := range cards {
		s.cards = append(s.cards, Card{Suit: Hearts, Rank: Rank(c)})
	}
	return s
}

func (s *stackedSource) DealOne() (Card, error) {
	if s.next >= len(s.cards) {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[s.next]
	s.next++
	return card, nil
}

func (s *stackedSource) Remaining() int       { return len(s.cards) - s.next }
func (s *stackedSource) NeedsReshuffle() bool { return false }
func (s *stackedSource) Reshuffle()           {}

func TestPlayDealerStandsAtSeventeen(t *testing.T) {
	final, state, err := PlayDealer(hand("10", "7"), stacked("5"))
	require.NoError(t, err)

	assert.Equal(t, DealerStanding, state)
	assert.Len(t, final, 2, "no draw at 17")
	assert.Equal(t, 17, final.BestTotal())
}

func TestPlayDealerDrawsBelowSeventeen(t *testing.T) {
	final, state, err := PlayDealer(hand("9", "7"), stacked("2", "K"))
	require.NoError(t, err)

	assert.Equal(t, DealerStanding, state)
	assert.Equal(t, 18, final.BestTotal())
	assert.Len(t, final, 3)
}

func TestPlayDealerBusts(t *testing.T) {
	// 15 draws, K busts it on 25.
	final, state, err := PlayDealer(hand("9", "6"), stacked("K"))
	require.NoError(t, err)

	assert.Equal(t, DealerBusted, state)
	assert.Equal(t, 25, final.BestTotal())
	assert.Len(t, final, 3)
}

func TestPlayDealerSoftSeventeenStands(t *testing.T) {
	// A+6 is 17; the fixed policy stands on it.
	final, state, err := PlayDealer(hand("A", "6"), stacked("K"))
	require.NoError(t, err)

	assert.Equal(t, DealerStanding, state)
	assert.Len(t, final, 2)
}

func TestPlayDealerAceRevaluation(t *testing.T) {
	// A+5 = soft 16 -> draws K, ace drops: 16 -> continues -> draws 2, stands on 18.
	final, state, err := PlayDealer(hand("A", "5"), stacked("K", "2"))
	require.NoError(t, err)

	assert.Equal(t, DealerStanding, state)
	assert.Equal(t, 18, final.BestTotal())
}

func TestPlayDealerShoeError(t *testing.T) {
	_, _, err := PlayDealer(hand("2", "3"), stacked())
	assert.ErrorIs(t, err, ErrShoeExhausted)
}
