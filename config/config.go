// Package config loads the simulator settings from PIDLAB_ environment
// variables, with the lesson defaults when a variable is unset.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/lambert-ike-1232/pidlab/control"
	"github.com/lambert-ike-1232/pidlab/simulate"
)

// Config carries every tunable the commands share.
type Config struct {
	// OutDir is where charts and CSV files land.
	OutDir string `env:"PIDLAB_OUT_DIR" envDefault:"out"`
	// Theme names the glamour style used to render lessons.
	Theme string `env:"PIDLAB_THEME" envDefault:"dark"`

	// Controller gains.
	Kp float64 `env:"PIDLAB_KP" envDefault:"5"`
	Ki float64 `env:"PIDLAB_KI" envDefault:"2"`
	Kd float64 `env:"PIDLAB_KD" envDefault:"0.5"`

	// Simulation window.
	Duration float64 `env:"PIDLAB_DURATION" envDefault:"30"`
	Samples  int     `env:"PIDLAB_SAMPLES" envDefault:"3000"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := control.NewPID(cfg.Kp, cfg.Ki, cfg.Kd); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := simulate.NewGrid(0, cfg.Duration, cfg.Samples); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// PID returns the configured controller.
func (c Config) PID() control.PID {
	return control.PID{Kp: c.Kp, Ki: c.Ki, Kd: c.Kd}
}

// Grid returns the configured simulation window.
func (c Config) Grid() simulate.Grid {
	return simulate.Grid{Start: 0, End: c.Duration, N: c.Samples}
}
