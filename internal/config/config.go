// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file, a .env file and environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SkillThreshold is the largest team skill gap accepted without swapping.
	SkillThreshold float64 `koanf:"skill_threshold"`

	// HomeTeam and AwayTeam name the two generated teams.
	HomeTeam string `koanf:"home_team"`
	AwayTeam string `koanf:"away_team"`

	// MaxRosterSize caps the number of grid rows; 0 means unbounded.
	MaxRosterSize int `koanf:"max_roster_size"`

	// ShuffleSeed, when non-zero, breaks equal-skill ties with a seeded
	// shuffle instead of input order.
	ShuffleSeed int64 `koanf:"shuffle_seed"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		SkillThreshold: 2,
		HomeTeam:       "Red",
		AwayTeam:       "White",
		MaxRosterSize:  500,
		ShuffleSeed:    0,
	}
}

// Validate checks the values Load cannot type-check on its own.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SkillThreshold < 0:
		return fmt.Errorf("%w: skill_threshold must not be negative", ErrInvalidConfig)
	case c.MaxRosterSize < 0:
		return fmt.Errorf("%w: max_roster_size must not be negative", ErrInvalidConfig)
	case strings.TrimSpace(c.HomeTeam) == "" || strings.TrimSpace(c.AwayTeam) == "":
		return fmt.Errorf("%w: team names must not be empty", ErrInvalidConfig)
	case strings.EqualFold(strings.TrimSpace(c.HomeTeam), strings.TrimSpace(c.AwayTeam)):
		return fmt.Errorf("%w: home_team and away_team must differ", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
