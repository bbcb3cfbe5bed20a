package game

// Hand is the ordered sequence of cards dealt to one party in a round.
type Hand []Card

// BestTotal sums card values counting aces as 11, then drops aces to 1 one at
// a time while the total is over 21. May return a value over 21 (bust).
func (h Hand) BestTotal() int {
	total := 0
	aces := 0

	for _, card := range h {
		total += card.Value()
		if card.IsAce() {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return total
}

// IsBlackjack reports a natural: exactly two cards totaling 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.BestTotal() == 21
}

func (h Hand) IsBust() bool {
	return h.BestTotal() > 21
}

// IsSoft reports whether an ace is still counted as 11 in the best total.
func (h Hand) IsSoft() bool {
	total := 0
	flexible := 0
	for _, card := range h {
		total += card.Value()
		if card.IsAce() {
			flexible++
		}
	}
	for total > 21 && flexible > 0 {
		total -= 10
		flexible--
	}
	return flexible > 0 && total <= 21
}

func (h Hand) Strings() []string {
	out := make([]string, len(h))
	for i, card := range h {
		out[i] = card.String()
	}
	return out
}
