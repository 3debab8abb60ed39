package config

import (
	"github.com/vijay-prabhu/listgrid/internal/arrange"
	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/filter"
	"github.com/vijay-prabhu/listgrid/internal/scoring"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig  `toml:"database"`
	Engine   EngineConfig    `toml:"engine"`
	Filters  filter.Criteria `toml:"filters"`
	Logging  LoggingConfig   `toml:"logging"`
	MCP      MCPConfig       `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// EngineConfig contains arrangement settings
type EngineConfig struct {
	ScoringPolicy     string       `toml:"scoring_policy"`
	SortMode          string       `toml:"sort_mode"`
	MinTiledItems     int          `toml:"min_tiled_items"`
	BadgeDisplayLimit int          `toml:"badge_display_limit"`
	Rising            RisingConfig `toml:"rising"`
}

// RisingConfig selects the Rising badge threshold.
// Only the threshold matching Rule is used.
type RisingConfig struct {
	Rule          string  `toml:"rule"`
	AbsoluteDelta float64 `toml:"absolute_delta"`
	RelativeDelta float64 `toml:"relative_delta"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty logs to stderr
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	rising := badge.DefaultRisingRule()

	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/listgrid/listgrid.db",
		},
		Engine: EngineConfig{
			ScoringPolicy:     scoring.BadgeWeighted,
			SortMode:          string(arrange.SortDefault),
			MinTiledItems:     3,
			BadgeDisplayLimit: 3,
			Rising: RisingConfig{
				Rule:          string(rising.Mode),
				AbsoluteDelta: rising.AbsoluteDelta,
				RelativeDelta: rising.RelativeDelta,
			},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

// RisingRule converts the rising settings to a badge rule.
// Call Validate first; an invalid rule name falls back to absolute.
func (e EngineConfig) RisingRule() badge.RisingRule {
	mode, err := badge.ParseRisingMode(e.Rising.Rule)
	if err != nil {
		mode = badge.RisingAbsolute
	}
	return badge.RisingRule{
		Mode:          mode,
		AbsoluteDelta: e.Rising.AbsoluteDelta,
		RelativeDelta: e.Rising.RelativeDelta,
	}
}

// ArrangeOptions builds engine options from the configuration
func (c *Config) ArrangeOptions() arrange.Options {
	return arrange.Options{
		ScoringPolicy: c.Engine.ScoringPolicy,
		SortMode:      c.Engine.SortMode,
		Filters:       c.Filters,
		Rising:        c.Engine.RisingRule(),
		MinTiledItems: c.Engine.MinTiledItems,
		BadgeLimit:    c.Engine.BadgeDisplayLimit,
	}
}
