package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &DB{db}, nil
}

// Amounts are stored as integer cents; the storage-level CHECK on balance is
// the last line of defense behind the ledger's conditional debit.
func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		status TEXT NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'completed', 'abandoned')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		bet INTEGER NOT NULL,
		player_hand TEXT NOT NULL,
		dealer_hand TEXT NOT NULL,
		player_total INTEGER NOT NULL,
		dealer_total INTEGER NOT NULL,
		outcome TEXT NOT NULL CHECK (outcome IN ('win', 'loss', 'push')),
		payout INTEGER NOT NULL,
		balance_before INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		round_id TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('debit', 'credit')),
		amount INTEGER NOT NULL CHECK (amount > 0),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (round_id, kind)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_account_id ON sessions(account_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
	CREATE INDEX IF NOT EXISTS idx_rounds_session_id ON rounds(session_id);
	CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at);
	CREATE INDEX IF NOT EXISTS idx_ledger_entries_account_id ON ledger_entries(account_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_entries_round_id ON ledger_entries(round_id);
	`

	_, err := db.Exec(schema)
	return err
}
