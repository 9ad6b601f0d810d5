package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/eyestrain/internal/session"
	"github.com/ayoisaiah/eyestrain/internal/source"
	"github.com/ayoisaiah/eyestrain/internal/ui"
)

// TickInterval is how often live metrics are refreshed between frames.
const TickInterval = time.Second

type read struct {
	err    error
	sample source.Sample
}

// reader pulls samples from src until it fails or ctx is done.
func reader(ctx context.Context, src source.Source) <-chan read {
	out := make(chan read)

	go func() {
		defer close(out)

		for {
			s, err := src.Next(ctx)

			select {
			case out <- read{sample: s, err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return out
}

// Run processes the whole input without the interactive display, then
// closes the monitor. In live mode a status line is printed every tick.
// The end of the input and a cancelled context are normal exits.
func (m *Monitor) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			_ = m.Close()
			panic(r)
		}
	}()

	loopErr := m.loop(ctx)

	return errors.Join(loopErr, m.Close())
}

func (m *Monitor) loop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	samples := reader(ctx, m.src)

	var tick <-chan time.Time

	if m.cfg.Live() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()

		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			res := m.Tick()

			if !m.cfg.Input.JSON {
				fmt.Fprintln(m.out, statusLine(&res))
			}
		case r, ok := <-samples:
			if !ok {
				return nil
			}

			if r.err != nil {
				return sourceError(r.err)
			}

			res, handled := m.Handle(r.sample)
			if handled && res.Alert && !m.cfg.Input.JSON {
				for _, line := range res.Recommendations {
					fmt.Fprint(m.out, pterm.Warning.Sprintln(line))
				}
			}
		}
	}
}

// sourceError hides the errors that mean the input ended normally.
func sourceError(err error) error {
	if errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	return errReadSource.Wrap(err)
}

// statusLine summarises a result on one line.
func statusLine(res *session.Result) string {
	m := res.Metrics

	return fmt.Sprintf(
		"%s  blinks/min %5.1f  PERCLOS %5.1f%%  avg blink %6.1f ms  EAR %.3f  blinks %d",
		ui.Level(res.Level, fmt.Sprintf("%-8s", res.Level)),
		m.BlinksPerMinute,
		m.Perclos,
		m.AvgBlinkDurationMs,
		m.AvgOpenness,
		res.TotalBlinks,
	)
}
