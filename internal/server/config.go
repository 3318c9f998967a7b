package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address      string `hcl:"address,optional"`
	Port         int    `hcl:"port,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	TickInterval int    `hcl:"tick_interval_seconds,optional"`
}

// TableConfig defines a blackjack table configuration
type TableConfig struct {
	Name            string `hcl:"name,label"`
	MaxSeats        int    `hcl:"max_seats,optional"`
	MinBet          int    `hcl:"min_bet"`
	MaxBet          int    `hcl:"max_bet"`
	DefaultBankroll int    `hcl:"default_bankroll,optional"`
	TurnTimeout     int    `hcl:"turn_timeout_ticks,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:      "localhost",
			Port:         8080,
			LogLevel:     "info",
			TickInterval: 5,
		},
		Tables: []TableConfig{
			{
				Name:            "main",
				MaxSeats:        4,
				MinBet:          5,
				MaxBet:          500,
				DefaultBankroll: 1000,
				TurnTimeout:     6,
			},
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.TickInterval == 0 {
		config.Server.TickInterval = 5
	}

	for i := range config.Tables {
		if config.Tables[i].MaxSeats == 0 {
			config.Tables[i].MaxSeats = 4
		}
		if config.Tables[i].DefaultBankroll == 0 {
			config.Tables[i].DefaultBankroll = config.Tables[i].MaxBet * 2
		}
		if config.Tables[i].TurnTimeout == 0 {
			config.Tables[i].TurnTimeout = 6
		}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.TickInterval < 1 {
		return fmt.Errorf("tick interval must be at least 1 second")
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	for _, table := range c.Tables {
		if table.MinBet <= 0 {
			return fmt.Errorf("table %s: minimum bet must be positive", table.Name)
		}
		if table.MaxBet < table.MinBet {
			return fmt.Errorf("table %s: maximum bet must be at least the minimum bet", table.Name)
		}
		if table.MaxSeats < 1 || table.MaxSeats > 7 {
			return fmt.Errorf("table %s: max seats must be between 1 and 7", table.Name)
		}
		if table.DefaultBankroll < table.MinBet {
			return fmt.Errorf("table %s: default bankroll must cover the minimum bet", table.Name)
		}
		if table.TurnTimeout < 1 {
			return fmt.Errorf("table %s: turn timeout must be at least one tick", table.Name)
		}
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GetTableByName returns a table configuration by name
func (c *ServerConfig) GetTableByName(name string) *TableConfig {
	for _, table := range c.Tables {
		if table.Name == name {
			return &table
		}
	}
	return nil
}
