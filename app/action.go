package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/eyestrain/internal/config"
	"github.com/ayoisaiah/eyestrain/internal/logger"
	"github.com/ayoisaiah/eyestrain/internal/osutil"
	"github.com/ayoisaiah/eyestrain/internal/pathutil"
	"github.com/ayoisaiah/eyestrain/internal/source"
	"github.com/ayoisaiah/eyestrain/internal/static"
	"github.com/ayoisaiah/eyestrain/internal/timeutil"
	"github.com/ayoisaiah/eyestrain/internal/ui"
	"github.com/ayoisaiah/eyestrain/monitor"
)

const (
	envNoColor          = "NO_COLOR"
	envEyestrainNoColor = "EYESTRAIN_NO_COLOR"
)

const (
	metaLogCloser = "log_closer"

	// simulated replays need an end
	defaultSimDuration = 5 * time.Minute
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig builds the configuration from the first-run prompt, the config
// file and the command-line flags, then installs the file logger.
func loadConfig(ctx *cli.Context, opts ...config.Option) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	opts = append([]config.Option{
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	}, opts...)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	closeLog := logger.Install(logger.Options{
		Path:       pathutil.LogFilePath(),
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		Level:      level,
	})

	if ctx.App.Metadata == nil {
		ctx.App.Metadata = make(map[string]any)
	}

	ctx.App.Metadata[metaLogCloser] = closeLog

	slog.InfoContext(ctx.Context, "config loaded", slog.String("config", cfg.String()))

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// openSource returns the simulator or the configured input stream.
func openSource(cfg *config.Config) (source.Source, error) {
	if !cfg.Input.Simulate {
		return source.Open(cfg.Input.Path, cfg.Input.Format)
	}

	opts := source.DefaultSimOptions()
	opts.Realtime = cfg.Live()
	opts.Duration = cfg.Input.Duration

	if !opts.Realtime {
		opts.Start = timeutil.Now()

		if opts.Duration == 0 {
			opts.Duration = defaultSimDuration
		}
	}

	return source.NewSimulator(opts), nil
}

// notifier returns a desktop notifier using the installed icon. A missing
// icon only costs the notification its image.
func notifier(ctx context.Context) monitor.Notifier {
	icon, err := static.Install()
	if err != nil {
		slog.WarnContext(ctx, "installing notification icon failed", slog.Any("error", err))
	}

	return monitor.DesktopNotifier{Icon: icon}
}

// runSession monitors the configured input until it ends, the user quits or
// the process is interrupted.
func runSession(cliCtx *cli.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Live() && cfg.Input.Duration > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Input.Duration)
		defer cancel()
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	mon, err := monitor.New(cfg, src, monitor.WithNotifier(notifier(ctx)))
	if err != nil {
		return errors.Join(err, src.Close())
	}

	if cfg.Input.Plain {
		return mon.Run(ctx)
	}

	return mon.RunTUI(ctx)
}

// defaultAction monitors a live or simulated eye signal.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	return runSession(ctx, cfg)
}

// reportAction handles the report command which replays a recorded session
// and writes its report.
func reportAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, config.WithReplay(ctx.Args().First()))
	if err != nil {
		return err
	}

	return runSession(ctx, cfg)
}

// editConfigAction handles the edit-config command which opens the
// eyestrain config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/eyestrain/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if EYESTRAIN_NO_COLOR is set
	if _, exists := os.LookupEnv(envEyestrainNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return pathutil.Initialize()
}

func afterAction(ctx *cli.Context) error {
	closeLog, ok := ctx.App.Metadata[metaLogCloser].(func() error)
	if !ok {
		return nil
	}

	slog.InfoContext(ctx.Context, "exiting eyestrain")

	return closeLog()
}
