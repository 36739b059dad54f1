package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the server tunables. Durations are stored as millisecond
// integers so a config file can express them directly; use the accessor
// methods when a time.Duration is needed.
type Config struct {
	MaxPlayers    int   `json:"max_players"`
	MinPlayers    int   `json:"min_players"`
	MinNameLength int   `json:"min_name_length"`
	MaxNameLength int   `json:"max_name_length"`
	MinTimerMS    int64 `json:"min_timer_ms"`
	MaxTimerMS    int64 `json:"max_timer_ms"`
	GraceMS       int64 `json:"disconnect_grace_ms"`
	SweepMS       int64 `json:"sweep_interval_ms"`
	AllowSelfPass bool  `json:"allow_self_pass"`
}

// Default returns the compiled-in tunables: rooms of up to 4 players,
// rounds lasting 10–30 seconds, a 5 second disconnect grace period, and
// a 100 ms deadline sweep.
func Default() *Config {
	return &Config{
		MaxPlayers:    4,
		MinPlayers:    2,
		MinNameLength: 2,
		MaxNameLength: 17,
		MinTimerMS:    10000,
		MaxTimerMS:    30000,
		GraceMS:       5000,
		SweepMS:       100,
		AllowSelfPass: true,
	}
}

// Load reads a JSON tunables file. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the tunables are internally consistent.
func (c *Config) Validate() error {
	switch {
	case c.MinPlayers < 2:
		return fmt.Errorf("%w: min_players must be at least 2", ErrInvalidConfig)
	case c.MaxPlayers < c.MinPlayers:
		return fmt.Errorf("%w: max_players must be >= min_players", ErrInvalidConfig)
	case c.MinNameLength < 1 || c.MaxNameLength < c.MinNameLength:
		return fmt.Errorf("%w: name length bounds are inconsistent", ErrInvalidConfig)
	case c.MinTimerMS <= 0 || c.MaxTimerMS <= c.MinTimerMS:
		return fmt.Errorf("%w: timer range must satisfy 0 < min < max", ErrInvalidConfig)
	case c.GraceMS < 0:
		return fmt.Errorf("%w: disconnect_grace_ms must not be negative", ErrInvalidConfig)
	case c.SweepMS <= 0:
		return fmt.Errorf("%w: sweep_interval_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

// MinTimer is the shortest possible round duration.
func (c *Config) MinTimer() time.Duration { return time.Duration(c.MinTimerMS) * time.Millisecond }

// MaxTimer is the exclusive upper bound on the round duration.
func (c *Config) MaxTimer() time.Duration { return time.Duration(c.MaxTimerMS) * time.Millisecond }

// GracePeriod is how long a disconnected player keeps their seat.
func (c *Config) GracePeriod() time.Duration { return time.Duration(c.GraceMS) * time.Millisecond }

// SweepInterval is the elimination timer's tick, and therefore the
// worst-case latency between a deadline elapsing and the round ending.
func (c *Config) SweepInterval() time.Duration { return time.Duration(c.SweepMS) * time.Millisecond }
