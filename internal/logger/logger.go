// Package logger sets up structured logging to a rotating file
package logger

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the log file.
type Options struct {
	Path string
	// MaxSize is the size in megabytes at which the file is rotated.
	MaxSize    int
	MaxBackups int
	Level      slog.Level
}

// New returns a JSON logger writing to the rotating file described by
// opts, and the file so it can be closed on exit.
func New(opts Options) (*slog.Logger, io.Closer) {
	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
	}

	return slog.New(newHandler(file, opts.Level)), file
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
}

// Install replaces the default logger and returns a function that closes
// the log file.
func Install(opts Options) func() error {
	l, closer := New(opts)

	slog.SetDefault(l)

	return closer.Close
}
