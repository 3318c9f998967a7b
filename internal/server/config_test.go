package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	assert.Equal(t, 5, cfg.Server.TickInterval)
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	cfg, err := LoadServerConfig("/nonexistent/blackjackd.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
}

func TestLoadServerConfig(t *testing.T) {
	content := `
server {
  address = "0.0.0.0"
  port = 9090
  log_level = "debug"
  tick_interval_seconds = 2
}

table "high-rollers" {
  min_bet = 100
  max_bet = 5000
  max_seats = 2
  default_bankroll = 20000
  turn_timeout_ticks = 10
}

table "casual" {
  min_bet = 1
  max_bet = 25
}
`
	path := filepath.Join(t.TempDir(), "blackjackd.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
	assert.Equal(t, 2, cfg.Server.TickInterval)
	require.Len(t, cfg.Tables, 2)

	high := cfg.GetTableByName("high-rollers")
	require.NotNil(t, high)
	assert.Equal(t, 100, high.MinBet)
	assert.Equal(t, 20000, high.DefaultBankroll)
	assert.Equal(t, 10, high.TurnTimeout)

	// Defaults fill in the casual table
	casual := cfg.GetTableByName("casual")
	require.NotNil(t, casual)
	assert.Equal(t, 4, casual.MaxSeats)
	assert.Equal(t, 50, casual.DefaultBankroll)
	assert.Equal(t, 6, casual.TurnTimeout)

	assert.Nil(t, cfg.GetTableByName("nope"))
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"bad port", func(c *ServerConfig) { c.Server.Port = 0 }},
		{"bad tick interval", func(c *ServerConfig) { c.Server.TickInterval = 0 }},
		{"no tables", func(c *ServerConfig) { c.Tables = nil }},
		{"zero min bet", func(c *ServerConfig) { c.Tables[0].MinBet = 0 }},
		{"max below min", func(c *ServerConfig) { c.Tables[0].MaxBet = c.Tables[0].MinBet - 1 }},
		{"too many seats", func(c *ServerConfig) { c.Tables[0].MaxSeats = 8 }},
		{"bankroll below min bet", func(c *ServerConfig) { c.Tables[0].DefaultBankroll = c.Tables[0].MinBet - 1 }},
		{"zero timeout", func(c *ServerConfig) { c.Tables[0].TurnTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
