package main

import (
	"os"

	"blackjack/internal/bot"
	"blackjack/internal/config"
	"blackjack/internal/database"
	"blackjack/internal/history"
	"blackjack/internal/ledger"

	"github.com/charmbracelet/log"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to connect to database", "err", err)
	}
	defer db.Close()

	logger.Info("database connected", "path", cfg.DatabasePath)

	b, err := bot.New(cfg, ledger.New(db.DB), history.New(db.DB), logger)
	if err != nil {
		logger.Fatal("failed to create bot", "err", err)
	}

	if err := b.Run(); err != nil {
		logger.Fatal("bot error", "err", err)
	}
}
