package game

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	MinReshuffleThreshold = 10
	MaxReshuffleThreshold = 100
)

// ErrShoeExhausted means a card was requested from an empty shoe. At a
// correctly reshuffled table this is unreachable; hitting it indicates a
// reshuffle-policy bug upstream.
var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe holds the undealt cards for one table. Reshuffling happens only
// between rounds, never while a hand is in progress.
type Shoe struct {
	cards     []Card
	dealt     int
	decks     int
	threshold int
	rng       *rand.Rand
}

// NewShoe builds and shuffles a shoe of decks*52 cards. The threshold is the
// remaining-card count below which the shoe wants a rebuild before the next
// round.
func NewShoe(decks, threshold int, rng *rand.Rand) (*Shoe, error) {
	if decks < 1 {
		return nil, fmt.Errorf("shoe needs at least one deck, got %d", decks)
	}
	if threshold < MinReshuffleThreshold || threshold > MaxReshuffleThreshold {
		return nil, fmt.Errorf("reshuffle threshold %d outside [%d, %d]",
			threshold, MinReshuffleThreshold, MaxReshuffleThreshold)
	}

	s := &Shoe{decks: decks, threshold: threshold, rng: rng}
	s.Reshuffle()
	return s, nil
}

// DealOne removes and returns the next undealt card.
func (s *Shoe) DealOne() (Card, error) {
	if s.dealt >= len(s.cards) {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[s.dealt]
	s.dealt++
	return card, nil
}

func (s *Shoe) Remaining() int {
	return len(s.cards) - s.dealt
}

func (s *Shoe) NeedsReshuffle() bool {
	return s.Remaining() < s.threshold
}

// Reshuffle discards all state and rebuilds a full shuffled shoe.
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for i := 0; i < s.decks; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, Card{Suit: suit, Rank: rank})
			}
		}
	}
	s.dealt = 0

	shuffle := rand.Shuffle
	if s.rng != nil {
		shuffle = s.rng.Shuffle
	}
	shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}
