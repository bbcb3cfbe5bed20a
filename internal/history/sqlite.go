package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"blackjack/internal/game"
	"blackjack/internal/ledger"

	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateSession(ctx context.Context, accountID string) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		AccountID: accountID,
		Status:    SessionActive,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, account_id, status, created_at)
		VALUES (?, ?, ?, ?)
	`, session.ID.String(), accountID, string(session.Status), session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (r *SQLiteRepository) Session(ctx context.Context, id uuid.UUID) (*Session, error) {
	session := &Session{ID: id}

	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT account_id, status, created_at FROM sessions WHERE id = ?
	`, id.String()).Scan(&session.AccountID, &status, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Status = SessionStatus(status)
	return session, nil
}

func (r *SQLiteRepository) CompleteSession(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, SessionCompleted)
}

func (r *SQLiteRepository) AbandonSession(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, SessionAbandoned)
}

// transition moves an active session to a terminal status. Terminal states
// are final, so the UPDATE only matches active rows.
func (r *SQLiteRepository) transition(ctx context.Context, id uuid.UUID, status SessionStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET status = ? WHERE id = ? AND status = 'active'
	`, string(status), id.String())
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	if affected == 0 {
		if _, err := r.Session(ctx, id); err != nil {
			return err
		}
		return ErrSessionNotActive
	}

	return nil
}

func (r *SQLiteRepository) SaveRound(ctx context.Context, round *Round) error {
	playerHand, err := json.Marshal(round.PlayerHand)
	if err != nil {
		return fmt.Errorf("failed to encode player hand: %w", err)
	}
	dealerHand, err := json.Marshal(round.DealerHand)
	if err != nil {
		return fmt.Errorf("failed to encode dealer hand: %w", err)
	}

	bet, err := ledger.ToCents(round.Bet)
	if err != nil {
		return fmt.Errorf("bad bet amount: %w", err)
	}
	payout, err := ledger.ToCents(round.Payout)
	if err != nil {
		return fmt.Errorf("bad payout amount: %w", err)
	}
	before, err := ledger.ToCents(round.BalanceBefore)
	if err != nil {
		return fmt.Errorf("bad balance: %w", err)
	}
	after, err := ledger.ToCents(round.BalanceAfter)
	if err != nil {
		return fmt.Errorf("bad balance: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO rounds (
			id, session_id, bet, player_hand, dealer_hand,
			player_total, dealer_total, outcome, payout,
			balance_before, balance_after, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, round.ID.String(), round.SessionID.String(), bet,
		string(playerHand), string(dealerHand),
		round.PlayerTotal, round.DealerTotal, string(round.Outcome), payout,
		before, after, round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) SessionRounds(ctx context.Context, sessionID uuid.UUID) ([]Round, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, bet, player_hand, dealer_hand, player_total, dealer_total,
		       outcome, payout, balance_before, balance_after, created_at
		FROM rounds
		WHERE session_id = ?
		ORDER BY created_at
	`, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var (
			round                      Round
			id, outcome                string
			playerHand, dealerHand     string
			bet, payout, before, after int64
		)
		if err := rows.Scan(&id, &bet, &playerHand, &dealerHand,
			&round.PlayerTotal, &round.DealerTotal, &outcome, &payout,
			&before, &after, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}

		round.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		round.SessionID = sessionID
		round.Bet = ledger.FromCents(bet)
		round.Payout = ledger.FromCents(payout)
		round.BalanceBefore = ledger.FromCents(before)
		round.BalanceAfter = ledger.FromCents(after)
		round.Outcome = game.Outcome(outcome)

		if err := json.Unmarshal([]byte(playerHand), &round.PlayerHand); err != nil {
			return nil, fmt.Errorf("failed to decode player hand: %w", err)
		}
		if err := json.Unmarshal([]byte(dealerHand), &round.DealerHand); err != nil {
			return nil, fmt.Errorf("failed to decode dealer hand: %w", err)
		}

		rounds = append(rounds, round)
	}

	return rounds, rows.Err()
}

func (r *SQLiteRepository) SessionStats(ctx context.Context, sessionID uuid.UUID) (*Stats, error) {
	var (
		stats         Stats
		wagered, paid int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(bet), 0),
			COALESCE(SUM(payout), 0),
			COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'push' THEN 1 ELSE 0 END), 0)
		FROM rounds
		WHERE session_id = ?
	`, sessionID.String()).Scan(&stats.RoundsPlayed, &wagered, &paid,
		&stats.Wins, &stats.Losses, &stats.Pushes)
	if err != nil {
		return nil, fmt.Errorf("failed to get session stats: %w", err)
	}

	stats.TotalWagered = ledger.FromCents(wagered)
	stats.TotalPayout = ledger.FromCents(paid)
	return &stats, nil
}
