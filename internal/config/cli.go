package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/eyestrain/internal/source"
)

// CLIOptions represents command-line configuration options. Numeric
// fields are only applied when their flag was set.
type CLIOptions struct {
	Input            string
	Format           string
	Window           string
	Duration         string
	ReportDir        string
	ReportCmd        string
	MetricsAddr      string
	BlinkThreshold   float64
	PerclosThreshold float64
	SetBlink         bool
	SetPerclos       bool
	Simulate         bool
	Replay           bool
	Plain            bool
	UTC              bool
	DisableNotify    bool
	JSON             bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Input:            ctx.String("input"),
			Format:           ctx.String("format"),
			Window:           ctx.String("window"),
			Duration:         ctx.String("duration"),
			ReportDir:        ctx.String("report-dir"),
			ReportCmd:        ctx.String("report-cmd"),
			MetricsAddr:      ctx.String("metrics-addr"),
			BlinkThreshold:   ctx.Float64("blink-threshold"),
			PerclosThreshold: ctx.Float64("perclos-threshold"),
			SetBlink:         ctx.IsSet("blink-threshold"),
			SetPerclos:       ctx.IsSet("perclos-threshold"),
			Simulate:         ctx.Bool("simulate"),
			Replay:           ctx.Bool("replay"),
			Plain:            ctx.Bool("plain"),
			UTC:              ctx.Bool("utc"),
			DisableNotify:    ctx.Bool("disable-notification"),
			JSON:             ctx.Bool("json"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Window != "" {
		dur, err := parseDuration(opts.Window)
		if err != nil {
			return errInvalidCLIDuration.Fmt("window", err)
		}

		c.Window.Duration = dur
	}

	if opts.Duration != "" {
		dur, err := parseDuration(opts.Duration)
		if err != nil || dur < 0 {
			return errInvalidCLIDuration.Fmt("session", opts.Duration)
		}

		c.Input.Duration = dur
	}

	if opts.SetBlink {
		c.Thresholds.Blink = opts.BlinkThreshold
	}

	if opts.SetPerclos {
		c.Thresholds.Perclos = opts.PerclosThreshold
	}

	format, err := source.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	c.Input.Path = opts.Input
	c.Input.Format = format
	c.Input.Simulate = opts.Simulate
	c.Input.Replay = opts.Replay
	c.Input.Plain = opts.Plain || opts.JSON
	c.Input.JSON = opts.JSON

	if opts.ReportDir != "" {
		c.Report.Dir = opts.ReportDir
	}

	if opts.ReportCmd != "" {
		c.Report.Cmd = opts.ReportCmd
	}

	if opts.UTC {
		c.Report.UTC = true
	}

	if opts.MetricsAddr != "" {
		c.Telemetry.Addr = opts.MetricsAddr
	}

	if opts.DisableNotify {
		c.Recommendation.Notify = false
	}

	return nil
}

// parseDuration accepts Go duration strings and bare numbers of seconds.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	secs, serr := time.ParseDuration(s + "s")
	if serr != nil {
		return 0, err
	}

	return secs, nil
}
