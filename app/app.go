package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/eyestrain/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the eyestrain app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "eyestrain",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Eyestrain watches a stream of eye openness samples and reports blink
		rate, blink duration and PERCLOS over a rolling window. It flags signs
		of eye fatigue as they appear and writes a session report on exit.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:      "report",
				Usage:     "Replay a recorded session and write its report",
				ArgsUsage: "<file>",
				Action:    reportAction,
			},
		},
		Flags: []cli.Flag{
			inputFlag,
			formatFlag,
			simulateFlag,
			replayFlag,
			plainFlag,
			durationFlag,
			windowFlag,
			blinkThresholdFlag,
			perclosThresholdFlag,
			reportDirFlag,
			reportCmdFlag,
			utcFlag,
			metricsAddrFlag,
			disableNotificationFlag,
			noColorFlag,
			jsonFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
