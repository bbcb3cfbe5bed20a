package ledger

import "errors"

var (
	// ErrAccountNotFound - an operation against a nonexistent account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount - amounts must be strictly positive with at most two
	// decimal places.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds - a debit that would take the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
