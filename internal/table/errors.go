package table

import "errors"

var (
	// ErrInvalidBet - a bet outside the table's [min, max] range.
	ErrInvalidBet = errors.New("bet outside table limits")

	// ErrRoundNotRecorded marks a degraded success: the balance change is
	// already committed and the returned round carries the outcome, but the
	// record failed to persist. Reconciliation is the caller's concern.
	ErrRoundNotRecorded = errors.New("round settled but not recorded")
)
