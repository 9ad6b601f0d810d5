package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
███████╗██╗   ██╗███████╗███████╗████████╗██████╗  █████╗ ██╗███╗   ██╗
██╔════╝╚██╗ ██╔╝██╔════╝██╔════╝╚══██╔══╝██╔══██╗██╔══██╗██║████╗  ██║
█████╗   ╚████╔╝ █████╗  ███████╗   ██║   ██████╔╝███████║██║██╔██╗ ██║
██╔══╝    ╚██╔╝  ██╔══╝  ╚════██║   ██║   ██╔══██╗██╔══██║██║██║╚██╗██║
███████╗   ██║   ███████╗███████║   ██║   ██║  ██║██║  ██║██║██║ ╚████║
╚══════╝   ╚═╝   ╚══════╝╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Window           time.Duration
	Cooldown         time.Duration
	BlinkThreshold   float64
	PerclosThreshold float64
}

// WithPromptConfig returns an Option that asks for the main settings on
// the first run. It does nothing when the config file exists or stdin is
// not a terminal.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if !interactive() {
			return nil
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func interactive() bool {
	f, ok := Stdin.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure eyestrain for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'eyestrain edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Rolling window length").
				Options(
					huh.NewOption("30 seconds", 30*time.Second),
					huh.NewOption("60 seconds", 60*time.Second).Selected(true),
					huh.NewOption("2 minutes", 2*time.Minute),
					huh.NewOption("5 minutes", 5*time.Minute),
				).
				Value(&opts.Window),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Eye openness ratio below which a blink starts").
				Options(
					huh.NewOption("0.20 (narrow eyes)", 0.20),
					huh.NewOption("0.25", 0.25).Selected(true),
					huh.NewOption("0.30 (wide eyes)", 0.30),
				).
				Value(&opts.BlinkThreshold),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Eye openness ratio below which a frame counts as closed").
				Options(
					huh.NewOption("0.20", 0.20),
					huh.NewOption("0.25", 0.25).Selected(true),
					huh.NewOption("0.30", 0.30),
				).
				Value(&opts.PerclosThreshold),
		),
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Minimum time between strain alerts").
				Options(
					huh.NewOption("1 minute", time.Minute),
					huh.NewOption("5 minutes", 5*time.Minute).Selected(true),
					huh.NewOption("10 minutes", 10*time.Minute),
					huh.NewOption("20 minutes", 20*time.Minute),
				).
				Value(&opts.Cooldown),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Window.Duration = opts.Window
	c.Thresholds.Blink = opts.BlinkThreshold
	c.Thresholds.Perclos = opts.PerclosThreshold
	c.Recommendation.Cooldown = opts.Cooldown
}
