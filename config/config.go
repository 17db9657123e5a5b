// Package config supplies engine defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/rulefire/rulefire/engine"
)

// Config holds the tunable engine parameters plus the history
// database location used by the CLI and embedding applications.
type Config struct {
	// PriorityThreshold is the maximum priority value (inclusive) a
	// rule may have and still be considered.
	PriorityThreshold int `env:"RULEFIRE_PRIORITY_THRESHOLD"`

	// SkipOnFirstApplied stops a pass after the first rule whose
	// action executes successfully.
	SkipOnFirstApplied bool `env:"RULEFIRE_SKIP_ON_FIRST_APPLIED"`

	// HistoryPath is the SQLite firing-history database path.
	// Empty disables history.
	HistoryPath string `env:"RULEFIRE_HISTORY_PATH"`
}

// Default returns the built-in defaults: unbounded threshold, skip
// mode off, no history.
func Default() Config {
	return Config{
		PriorityThreshold: engine.DefaultPriorityThreshold,
	}
}

// FromEnv returns Default overridden by any RULEFIRE_* environment
// variables that are set.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Options maps the config onto engine construction options.
func (c Config) Options() []engine.Option {
	opts := []engine.Option{
		engine.WithPriorityThreshold(c.PriorityThreshold),
	}
	if c.SkipOnFirstApplied {
		opts = append(opts, engine.WithSkipOnFirstApplied())
	}
	return opts
}
