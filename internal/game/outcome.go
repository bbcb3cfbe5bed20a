package game

import "github.com/shopspring/decimal"

// Outcome of one round from the player's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

var (
	two          = decimal.NewFromInt(2)
	blackjackPay = decimal.RequireFromString("2.5")
)

// Resolve compares finished hands and returns the outcome together with the
// total payout credited back to the player (stake included where it returns).
// First matching rule wins:
//
//	player bust                          -> loss, 0
//	player natural, dealer not          -> win, bet*2.5
//	dealer bust                          -> win, bet*2
//	both natural or equal totals         -> push, bet
//	player total higher                  -> win, bet*2
//	otherwise                            -> loss, 0
func Resolve(player, dealer Hand, bet decimal.Decimal) (Outcome, decimal.Decimal) {
	switch {
	case player.IsBust():
		return OutcomeLoss, decimal.Zero
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return OutcomeWin, bet.Mul(blackjackPay)
	case dealer.IsBust():
		return OutcomeWin, bet.Mul(two)
	case player.IsBlackjack() && dealer.IsBlackjack():
		return OutcomePush, bet
	case player.BestTotal() == dealer.BestTotal():
		return OutcomePush, bet
	case player.BestTotal() > dealer.BestTotal():
		return OutcomeWin, bet.Mul(two)
	default:
		return OutcomeLoss, decimal.Zero
	}
}
