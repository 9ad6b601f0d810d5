// Package config loads eyestrain settings from the config file and the
// command line
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/pathutil"
	"github.com/ayoisaiah/eyestrain/internal/report"
	"github.com/ayoisaiah/eyestrain/internal/session"
	"github.com/ayoisaiah/eyestrain/internal/source"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Report         ReportConfig         `mapstructure:"report"`
		Telemetry      TelemetryConfig      `mapstructure:"telemetry"`
		Log            LogConfig            `mapstructure:"log"`
		Input          InputConfig          `mapstructure:"-"`
		System         SystemConfig         `mapstructure:"-"`
		Thresholds     ThresholdsConfig     `mapstructure:"thresholds"`
		Window         WindowConfig         `mapstructure:"window"`
		Recommendation RecommendationConfig `mapstructure:"recommendation"`
		Display        DisplayConfig        `mapstructure:"display"`
	}

	// WindowConfig holds rolling window settings.
	WindowConfig struct {
		Duration time.Duration `mapstructure:"duration"`
	}

	// ThresholdsConfig holds the openness ratio thresholds.
	ThresholdsConfig struct {
		Blink   float64 `mapstructure:"blink"`
		Perclos float64 `mapstructure:"perclos"`
	}

	// RecommendationConfig controls High strain alerts.
	RecommendationConfig struct {
		Cooldown time.Duration `mapstructure:"cooldown"`
		Notify   bool          `mapstructure:"notify"`
	}

	// ReportConfig controls the end of session report.
	ReportConfig struct {
		Dir string `mapstructure:"dir"`
		// Cmd runs after the report is written.
		Cmd string `mapstructure:"cmd"`
		UTC bool   `mapstructure:"utc"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// TelemetryConfig holds the Prometheus endpoint address. Empty disables
	// it.
	TelemetryConfig struct {
		Addr string `mapstructure:"addr"`
	}

	// LogConfig holds the log file settings.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// InputConfig describes the signal source. It is only set from the
	// command line.
	InputConfig struct {
		Path     string
		Format   source.Format
		// Simulate replaces the input with a synthetic signal.
		Simulate bool
		// Replay uses the timestamps carried by the input instead of the
		// wall clock.
		Replay bool
		// Plain disables the interactive display.
		Plain bool
		// JSON prints the final report as JSON.
		JSON bool
		// Duration stops a live session, or sets the length of a fast
		// simulated one. Zero means no limit.
		Duration time.Duration
	}

	// SystemConfig holds system-related settings.
	SystemConfig struct {
		ConfigPath string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.1.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config, applies options in order and validates the
// result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Session returns the engine settings.
func (c *Config) Session() session.Settings {
	return session.Settings{
		Window:           c.Window.Duration,
		BlinkThreshold:   c.Thresholds.Blink,
		PerclosThreshold: c.Thresholds.Perclos,
		Cooldown:         c.Recommendation.Cooldown,
	}
}

// Location returns the time zone reports are rendered in.
func (c *Config) Location() *time.Location {
	if c.Report.UTC {
		return time.UTC
	}

	return time.Local
}

// ReportWriter returns a writer for the configured report directory.
func (c *Config) ReportWriter() *report.Writer {
	dir := c.Report.Dir
	if dir == "" {
		dir = pathutil.ReportsDir()
	}

	return &report.Writer{
		Dir:      dir,
		Location: c.Location(),
	}
}

// Live reports whether samples are stamped with the wall clock on receipt.
func (c *Config) Live() bool {
	return !c.Input.Replay
}

// WithReplay returns an Option that replays a recorded stream without the
// interactive display.
func WithReplay(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return errMissingReplayFile
		}

		c.Input.Path = path
		c.Input.Replay = true
		c.Input.Plain = true
		c.Input.Simulate = false

		return nil
	}
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"window=%s blink=%.2f perclos=%.2f cooldown=%s input=%q format=%s replay=%t",
		c.Window.Duration,
		c.Thresholds.Blink,
		c.Thresholds.Perclos,
		c.Recommendation.Cooldown,
		c.Input.Path,
		c.Input.Format,
		c.Input.Replay,
	)
}
