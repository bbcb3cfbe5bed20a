package config

import (
	"fmt"
	"os"
	"strconv"

	"blackjack/internal/game"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	BotToken     string
	DatabasePath string

	StartBalance decimal.Decimal
	DefaultBet   decimal.Decimal
	MinBet       decimal.Decimal
	MaxBet       decimal.Decimal

	ShoeDecks     int
	ShoeThreshold int
}

func Load() (*Config, error) {
	godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./blackjack.db"
	}

	cfg := &Config{
		BotToken:     token,
		DatabasePath: dbPath,
	}

	var err error
	if cfg.StartBalance, err = envDecimal("START_BALANCE", "100"); err != nil {
		return nil, err
	}
	if cfg.DefaultBet, err = envDecimal("DEFAULT_BET", "10"); err != nil {
		return nil, err
	}
	if cfg.MinBet, err = envDecimal("MIN_BET", "1"); err != nil {
		return nil, err
	}
	if cfg.MaxBet, err = envDecimal("MAX_BET", "1000"); err != nil {
		return nil, err
	}
	if cfg.ShoeDecks, err = envInt("SHOE_DECKS", 6); err != nil {
		return nil, err
	}
	if cfg.ShoeThreshold, err = envInt("SHOE_THRESHOLD", 50); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.StartBalance.IsPositive() {
		return fmt.Errorf("START_BALANCE must be positive, got %s", c.StartBalance)
	}
	if !c.MinBet.IsPositive() {
		return fmt.Errorf("MIN_BET must be positive, got %s", c.MinBet)
	}
	if !c.MaxBet.GreaterThan(c.MinBet) {
		return fmt.Errorf("MAX_BET (%s) must be greater than MIN_BET (%s)", c.MaxBet, c.MinBet)
	}
	if c.DefaultBet.LessThan(c.MinBet) || c.DefaultBet.GreaterThan(c.MaxBet) {
		return fmt.Errorf("DEFAULT_BET (%s) must be within [%s, %s]", c.DefaultBet, c.MinBet, c.MaxBet)
	}
	if c.ShoeDecks < 1 {
		return fmt.Errorf("SHOE_DECKS must be at least 1, got %d", c.ShoeDecks)
	}
	if c.ShoeThreshold < game.MinReshuffleThreshold || c.ShoeThreshold > game.MaxReshuffleThreshold {
		return fmt.Errorf("SHOE_THRESHOLD must be in [%d, %d], got %d",
			game.MinReshuffleThreshold, game.MaxReshuffleThreshold, c.ShoeThreshold)
	}
	return nil
}

func envDecimal(key, fallback string) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		value = fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad %s value %q: %w", key, value, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q: %w", key, value, err)
	}
	return n, nil
}
