package table

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blackjack/internal/game"
	"blackjack/internal/history"
	"blackjack/internal/ledger"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Limits bound the accepted bet range.
type Limits struct {
	MinBet decimal.Decimal
	MaxBet decimal.Decimal
}

// Table is the round-settlement engine: it owns one shoe and drives a round
// from bet debit through dealing, dealer play, outcome resolution, payout
// credit and the persisted round record. Balance state and round records live
// behind the ledger and history collaborators; the table itself holds no
// money.
type Table struct {
	shoe    game.CardSource
	ledger  ledger.Ledger
	history history.Repository
	limits  Limits
	logger  *log.Logger

	// mu serializes rounds: the shoe is not safe for concurrent dealing
	// and a table runs one round at a time.
	mu sync.Mutex
}

func New(shoe game.CardSource, l ledger.Ledger, h history.Repository, limits Limits, logger *log.Logger) *Table {
	return &Table{
		shoe:    shoe,
		ledger:  l,
		history: h,
		limits:  limits,
		logger:  logger.WithPrefix("table"),
	}
}

// PlayRound runs one full round for an active session. Validation failures
// before the debit leave no trace; once the bet is debited the round runs to
// settlement. On a record-persistence failure the settled round is still
// returned together with ErrRoundNotRecorded.
func (t *Table) PlayRound(ctx context.Context, sessionID uuid.UUID, bet decimal.Decimal) (*history.Round, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if bet.LessThan(t.limits.MinBet) || bet.GreaterThan(t.limits.MaxBet) {
		return nil, fmt.Errorf("%w: %s not in [%s, %s]",
			ErrInvalidBet, bet, t.limits.MinBet, t.limits.MaxBet)
	}

	session, err := t.history.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != history.SessionActive {
		return nil, history.ErrSessionNotActive
	}

	balanceBefore, err := t.ledger.Balance(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}

	// Rebuild the shoe between rounds, before the first card is dealt.
	if t.shoe.NeedsReshuffle() {
		t.logger.Info("reshuffling shoe", "remaining", t.shoe.Remaining())
		t.shoe.Reshuffle()
	}

	roundID := uuid.New()

	if err := t.ledger.Debit(ctx, session.AccountID, bet, roundID); err != nil {
		return nil, err
	}

	// The bet is committed: everything past this point runs to settlement.
	playerHand, dealerHand, err := t.dealInitial()
	if err != nil {
		t.logger.Error("dealing failed after debit", "round_id", roundID, "err", err)
		return nil, fmt.Errorf("round %s aborted after debit: %w", roundID, err)
	}

	// A natural on either side settles immediately; the dealer only plays
	// out a live hand.
	if !playerHand.IsBlackjack() && !dealerHand.IsBlackjack() {
		dealerHand, _, err = game.PlayDealer(dealerHand, t.shoe)
		if err != nil {
			t.logger.Error("dealer play failed after debit", "round_id", roundID, "err", err)
			return nil, fmt.Errorf("round %s aborted after debit: %w", roundID, err)
		}
	}

	outcome, payout := game.Resolve(playerHand, dealerHand, bet)

	if payout.IsPositive() {
		if err := t.ledger.Credit(ctx, session.AccountID, payout, roundID); err != nil {
			t.logger.Error("payout credit failed", "round_id", roundID, "payout", payout, "err", err)
			return nil, fmt.Errorf("round %s payout failed: %w", roundID, err)
		}
	}

	balanceAfter, err := t.ledger.Balance(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}

	round := &history.Round{
		ID:            roundID,
		SessionID:     sessionID,
		Bet:           bet,
		PlayerHand:    playerHand,
		DealerHand:    dealerHand,
		PlayerTotal:   playerHand.BestTotal(),
		DealerTotal:   dealerHand.BestTotal(),
		Outcome:       outcome,
		Payout:        payout,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		CreatedAt:     time.Now().UTC(),
	}

	if err := t.history.SaveRound(ctx, round); err != nil {
		t.logger.Error("failed to record round", "round_id", roundID, "err", err)
		return round, fmt.Errorf("%w: %s", ErrRoundNotRecorded, err)
	}

	t.logger.Info("round settled",
		"round_id", roundID,
		"outcome", outcome,
		"bet", bet,
		"payout", payout,
		"player_total", round.PlayerTotal,
		"dealer_total", round.DealerTotal,
	)

	return round, nil
}

// dealInitial deals two cards each, alternating player, dealer.
func (t *Table) dealInitial() (game.Hand, game.Hand, error) {
	var player, dealer game.Hand

	for i := 0; i < 2; i++ {
		card, err := t.shoe.DealOne()
		if err != nil {
			return nil, nil, err
		}
		player = append(player, card)

		card, err = t.shoe.DealOne()
		if err != nil {
			return nil, nil, err
		}
		dealer = append(dealer, card)
	}

	return player, dealer, nil
}
