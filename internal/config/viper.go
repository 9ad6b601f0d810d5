package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// viper keys of the config file.
const (
	keyWindowDuration         = "window.duration"
	keyBlinkThreshold         = "thresholds.blink"
	keyPerclosThreshold       = "thresholds.perclos"
	keyRecommendationCooldown = "recommendation.cooldown"
	keyRecommendationNotify   = "recommendation.notify"
	keyReportDir              = "report.dir"
	keyReportCmd              = "report.cmd"
	keyReportUTC              = "report.utc"
	keyDarkTheme              = "display.dark_theme"
	keyTelemetryAddr          = "telemetry.addr"
	keyLogLevel               = "log.level"
	keyLogMaxSize             = "log.max_size"
	keyLogMaxBackups          = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the
// file at configPath. A missing file is created with the defaults, plus any
// values already set on the Config by the first-run prompt.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		c.System.ConfigPath = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper sets the defaults and overlays prompt answers.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyWindowDuration, "60s")
	v.SetDefault(keyBlinkThreshold, 0.25)
	v.SetDefault(keyPerclosThreshold, 0.25)
	v.SetDefault(keyRecommendationCooldown, "5m")
	v.SetDefault(keyRecommendationNotify, true)
	v.SetDefault(keyReportDir, "")
	v.SetDefault(keyReportCmd, "")
	v.SetDefault(keyReportUTC, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTelemetryAddr, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Window.Duration != 0 {
		v.SetDefault(keyWindowDuration, c.Window.Duration.String())
	}

	if c.Thresholds.Blink != 0 {
		v.SetDefault(keyBlinkThreshold, c.Thresholds.Blink)
	}

	if c.Thresholds.Perclos != 0 {
		v.SetDefault(keyPerclosThreshold, c.Thresholds.Perclos)
	}

	if c.Recommendation.Cooldown != 0 {
		v.SetDefault(keyRecommendationCooldown, c.Recommendation.Cooldown.String())
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errParseConfig.Wrap(err)
	}

	return nil
}
