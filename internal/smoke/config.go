package smoke

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid smoke config")

// Config holds configuration for a smoke run
type Config struct {
	BaseURL    string        // Base URL of the service
	Players    int           // Number of grid rows to generate
	Attendance float64       // Share of rows marked attending
	Defense    float64       // Share of rows marked defense
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Generator seed; 0 picks one from the clock
	Verbose    bool          // Print both lineups
}

// Validate checks ranges before any request is sent.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url is required", ErrInvalidConfig)
	case c.Players < 0:
		return fmt.Errorf("%w: players must not be negative", ErrInvalidConfig)
	case c.Attendance < 0 || c.Attendance > 1:
		return fmt.Errorf("%w: attendance must be within [0,1]", ErrInvalidConfig)
	case c.Defense < 0 || c.Defense > 1:
		return fmt.Errorf("%w: defense must be within [0,1]", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Player is one player as returned by the teams endpoint
type Player struct {
	First    string  `json:"first"`
	Last     string  `json:"last"`
	Skill    float64 `json:"skill"`
	Position string  `json:"position"`
}

// Team is one side of an assignment
type Team struct {
	Name    string   `json:"name"`
	Skill   float64  `json:"skill"`
	Players []Player `json:"players"`
}

// Assignment is the teams endpoint response
type Assignment struct {
	Teams      []Team  `json:"teams"`
	Gap        float64 `json:"gap"`
	Iterations int     `json:"iterations"`
	Swaps      int     `json:"swaps"`
	Balanced   bool    `json:"balanced"`
}

// Stats holds run statistics
type Stats struct {
	RunID     string
	Seed      int64
	Rows      int
	Attending int
	Gap       float64
	Swaps     int
	Balanced  bool
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
