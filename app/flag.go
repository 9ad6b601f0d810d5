package app

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/eyestrain/internal/source"
)

var (
	inputFlag = &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Read eye samples from this file. Defaults to standard input",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Input format: " + formatNames() + ". Inferred from the file extension when omitted",
	}

	simulateFlag = &cli.BoolFlag{
		Name:  "simulate",
		Usage: "Generate a synthetic eye signal instead of reading one",
	}

	replayFlag = &cli.BoolFlag{
		Name:  "replay",
		Usage: "Use the timestamps carried by the input instead of the wall clock",
	}

	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Print a status line every second instead of the interactive display",
	}

	durationFlag = &cli.StringFlag{
		Name:  "duration",
		Usage: "Stop a live session after this long, or set the length of a simulated replay (e.g. 10m)",
	}

	windowFlag = &cli.StringFlag{
		Name:    "window",
		Aliases: []string{"w"},
		Usage:   "Rolling window length, in seconds or as a duration (default: 60s)",
	}

	blinkThresholdFlag = &cli.Float64Flag{
		Name:  "blink-threshold",
		Usage: "Openness below which the eyes count as closed (default: 0.25)",
	}

	perclosThresholdFlag = &cli.Float64Flag{
		Name:  "perclos-threshold",
		Usage: "Openness below which a frame counts towards PERCLOS (default: 0.25)",
	}

	reportDirFlag = &cli.StringFlag{
		Name:  "report-dir",
		Usage: "Directory for the session report files",
	}

	reportCmdFlag = &cli.StringFlag{
		Name:    "report-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after the report is written",
	}

	utcFlag = &cli.BoolFlag{
		Name:  "utc",
		Usage: "Write report times in UTC instead of local time",
	}

	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "Serve Prometheus metrics on this address (e.g. :9090)",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a recommendation changes",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the final report as JSON. Implies --plain",
	}
)

func formatNames() string {
	names := make([]string, 0, len(source.Formats))
	for _, f := range source.Formats {
		names = append(names, string(f))
	}

	return strings.Join(names, ", ")
}
