package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	for _, key := range []string{"DATABASE_PATH", "START_BALANCE", "DEFAULT_BET",
		"MIN_BET", "MAX_BET", "SHOE_DECKS", "SHOE_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, "./blackjack.db", cfg.DatabasePath)
	assert.True(t, cfg.StartBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.DefaultBet.Equal(decimal.NewFromInt(10)))
	assert.True(t, cfg.MinBet.Equal(decimal.NewFromInt(1)))
	assert.True(t, cfg.MaxBet.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 6, cfg.ShoeDecks)
	assert.Equal(t, 50, cfg.ShoeThreshold)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("START_BALANCE", "250.50")
	t.Setenv("MIN_BET", "5")
	t.Setenv("MAX_BET", "500")
	t.Setenv("SHOE_DECKS", "2")
	t.Setenv("SHOE_THRESHOLD", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.StartBalance.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, cfg.MinBet.Equal(decimal.NewFromInt(5)))
	assert.True(t, cfg.MaxBet.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 2, cfg.ShoeDecks)
	assert.Equal(t, 30, cfg.ShoeThreshold)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"max not above min", map[string]string{"MIN_BET": "10", "MAX_BET": "10"}},
		{"default bet outside limits", map[string]string{"DEFAULT_BET": "2000"}},
		{"threshold too low", map[string]string{"SHOE_THRESHOLD": "9"}},
		{"threshold too high", map[string]string{"SHOE_THRESHOLD": "101"}},
		{"negative start balance", map[string]string{"START_BALANCE": "-1"}},
		{"zero decks", map[string]string{"SHOE_DECKS": "0"}},
		{"garbage decimal", map[string]string{"MIN_BET": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "test-token")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
