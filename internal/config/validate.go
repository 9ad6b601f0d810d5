package config

import (
	"log/slog"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/source"
)

var (
	minWindow = 1 * time.Second
	maxWindow = 1 * time.Hour
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateThreshold("blink", c.Thresholds.Blink); err != nil {
		return err
	}

	if err := validateThreshold("perclos", c.Thresholds.Perclos); err != nil {
		return err
	}

	if c.Window.Duration < minWindow || c.Window.Duration > maxWindow {
		return errInvalidWindow.Fmt(minWindow, maxWindow, c.Window.Duration)
	}

	if c.Recommendation.Cooldown < 0 {
		return errInvalidCooldown.Fmt(c.Recommendation.Cooldown)
	}

	if _, err := source.ParseFormat(string(c.Input.Format)); err != nil {
		return err
	}

	if c.Input.Simulate && c.Input.Path != "" {
		return errSimulateWithInput
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

func validateThreshold(name string, v float64) error {
	if !(v > 0 && v <= 1) {
		return errInvalidThreshold.Fmt(name, v)
	}

	return nil
}

// LogLevel parses the configured log level. Empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return level, nil
}
