package game

// CardSource deals cards during a round. *Shoe is the production
// implementation; tests substitute a stacked source.
type CardSource interface {
	DealOne() (Card, error)
	Remaining() int
	NeedsReshuffle() bool
	Reshuffle()
}

// DealerState tracks the dealer through the fixed draw policy.
type DealerState int

const (
	DealerDrawing DealerState = iota
	DealerStanding
	DealerBusted
)

// PlayDealer runs the house policy on an already-dealt dealer hand: draw
// while the best total is below 17, then stand; over 21 is a bust. No soft-17
// special case. Each draw strictly grows the total, so the loop terminates.
func PlayDealer(hand Hand, shoe CardSource) (Hand, DealerState, error) {
	state := DealerDrawing

	for state == DealerDrawing {
		total := hand.BestTotal()
		switch {
		case total > 21:
			state = DealerBusted
		case total >= 17:
			state = DealerStanding
		default:
			card, err := shoe.DealOne()
			if err != nil {
				return hand, state, err
			}
			hand = append(hand, card)
		}
	}

	return hand, state, nil
}
