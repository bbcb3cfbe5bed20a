package history

import (
	"context"
	"errors"
	"time"

	"blackjack/internal/game"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotActive - completed and abandoned sessions are final.
	ErrSessionNotActive = errors.New("session is not active")
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// Session groups the rounds one account plays at the table.
type Session struct {
	ID        uuid.UUID
	AccountID string
	Status    SessionStatus
	CreatedAt time.Time
}

// Round is the immutable record of one settled round. It is created exactly
// once at settlement and never mutated afterward.
type Round struct {
	ID            uuid.UUID
	SessionID     uuid.UUID
	Bet           decimal.Decimal
	PlayerHand    game.Hand
	DealerHand    game.Hand
	PlayerTotal   int
	DealerTotal   int
	Outcome       game.Outcome
	Payout        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}

// Stats aggregates a session's rounds.
type Stats struct {
	RoundsPlayed int
	TotalWagered decimal.Decimal
	TotalPayout  decimal.Decimal
	Wins         int
	Losses       int
	Pushes       int
}

// Repository owns session lifecycle and the append-only round log.
type Repository interface {
	CreateSession(ctx context.Context, accountID string) (*Session, error)
	Session(ctx context.Context, id uuid.UUID) (*Session, error)
	CompleteSession(ctx context.Context, id uuid.UUID) error
	AbandonSession(ctx context.Context, id uuid.UUID) error

	SaveRound(ctx context.Context, round *Round) error
	SessionRounds(ctx context.Context, sessionID uuid.UUID) ([]Round, error)
	SessionStats(ctx context.Context, sessionID uuid.UUID) (*Stats, error)
}
