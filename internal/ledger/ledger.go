package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account owns a non-negative chip balance at 2-decimal precision.
type Account struct {
	ID      string
	Balance decimal.Decimal
}

// Ledger exclusively owns account balance state. Debits and credits are
// atomic with respect to concurrent mutation of the same account, and every
// mutation is journaled against the round that caused it.
type Ledger interface {
	GetOrCreate(ctx context.Context, id string, startBalance decimal.Decimal) (*Account, error)
	Balance(ctx context.Context, id string) (decimal.Decimal, error)
	Debit(ctx context.Context, id string, amount decimal.Decimal, roundID uuid.UUID) error
	Credit(ctx context.Context, id string, amount decimal.Decimal, roundID uuid.UUID) error
}

type SQLiteLedger struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLiteLedger {
	return &SQLiteLedger{db: db}
}

func (l *SQLiteLedger) GetOrCreate(ctx context.Context, id string, startBalance decimal.Decimal) (*Account, error) {
	account := &Account{ID: id}

	var cents int64
	err := l.db.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE id = ?`, id).Scan(&cents)

	if err == sql.ErrNoRows {
		start, convErr := ToCents(startBalance)
		if convErr != nil || start < 0 {
			return nil, fmt.Errorf("bad starting balance %s: %w", startBalance, ErrInvalidAmount)
		}

		if _, err = l.db.ExecContext(ctx,
			`INSERT INTO accounts (id, balance) VALUES (?, ?)`, id, start); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		account.Balance = FromCents(start)
		return account, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.Balance = FromCents(cents)
	return account, nil
}

func (l *SQLiteLedger) Balance(ctx context.Context, id string) (decimal.Decimal, error) {
	var cents int64
	err := l.db.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE id = ?`, id).Scan(&cents)

	if err == sql.ErrNoRows {
		return decimal.Zero, ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return FromCents(cents), nil
}

// Debit decrements the balance only if the result stays non-negative. The
// conditional UPDATE and the journal insert commit as one transaction.
func (l *SQLiteLedger) Debit(ctx context.Context, id string, amount decimal.Decimal, roundID uuid.UUID) error {
	cents, err := validAmount(amount)
	if err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin debit: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = balance - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND balance >= ?
	`, cents, id, cents)
	if err != nil {
		return fmt.Errorf("failed to debit account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to debit account: %w", err)
	}
	if affected == 0 {
		if !l.exists(ctx, tx, id) {
			return ErrAccountNotFound
		}
		return ErrInsufficientFunds
	}

	if err := journal(ctx, tx, id, roundID, "debit", cents); err != nil {
		return err
	}

	return tx.Commit()
}

// Credit increments the balance; it fails only for unknown accounts or bad
// amounts.
func (l *SQLiteLedger) Credit(ctx context.Context, id string, amount decimal.Decimal, roundID uuid.UUID) error {
	cents, err := validAmount(amount)
	if err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin credit: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, cents, id)
	if err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	if err := journal(ctx, tx, id, roundID, "credit", cents); err != nil {
		return err
	}

	return tx.Commit()
}

func (l *SQLiteLedger) exists(ctx context.Context, tx *sql.Tx, id string) bool {
	var found bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ?)`, id).Scan(&found); err != nil {
		return false
	}
	return found
}

// journal appends the mutation tied to its round. UNIQUE(round_id, kind)
// turns a replayed debit or credit into a constraint error instead of a
// double-spend.
func journal(ctx context.Context, tx *sql.Tx, accountID string, roundID uuid.UUID, kind string, cents int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, account_id, round_id, kind, amount)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), accountID, roundID.String(), kind, cents)
	if err != nil {
		return fmt.Errorf("failed to journal %s: %w", kind, err)
	}
	return nil
}

func validAmount(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return ToCents(amount)
}
