package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/eyestrain/internal/models"
	"github.com/ayoisaiah/eyestrain/internal/session"
	"github.com/ayoisaiah/eyestrain/internal/source"
)

type (
	sampleMsg struct {
		err    error
		sample source.Sample
	}

	tickMsg time.Time
)

// Model is the live display of a session.
type Model struct {
	ctx       context.Context
	err       error
	mon       *Monitor
	lastBlink *models.Blink
	style     styles
	help      help.Model
	perclos   progress.Model
	rate      progress.Model
	res       session.Result
	showHelp  bool
}

func newModel(ctx context.Context, mon *Monitor) *Model {
	bar := func() progress.Model {
		return progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(maxWidth/2),
		)
	}

	return &Model{
		ctx:     ctx,
		mon:     mon,
		style:   newStyles(mon.cfg.Display.DarkTheme),
		help:    help.New(),
		perclos: bar(),
		rate:    bar(),
		res:     mon.Last(),
	}
}

func (t *Model) readCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := t.mon.src.Next(t.ctx)

		return sampleMsg{sample: s, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

func (t *Model) Init() tea.Cmd {
	if t.mon.cfg.Live() {
		return tea.Batch(t.readCmd(), tickCmd())
	}

	return t.readCmd()
}

func (t *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sampleMsg:
		if msg.err != nil {
			t.err = sourceError(msg.err)
			return t, tea.Quit
		}

		if res, ok := t.mon.Handle(msg.sample); ok {
			t.res = res

			if res.Blink != nil {
				t.lastBlink = res.Blink
			}
		}

		return t, t.readCmd()

	case tickMsg:
		t.res = t.mon.Tick()

		return t, tickCmd()

	case tea.KeyMsg:
		slog.Debug(spew.Sdump(msg))

		switch {
		case key.Matches(msg, defaultKeymap.quit):
			return t, tea.Quit
		case key.Matches(msg, defaultKeymap.help):
			t.showHelp = !t.showHelp
		}

		return t, nil

	case tea.WindowSizeMsg:
		slog.Debug(spew.Sdump(msg))

		width := min(msg.Width-padding*2-4, maxWidth) / 2
		t.perclos.Width = width
		t.rate.Width = width

		return t, nil
	}

	return t, nil
}

// RunTUI runs the session with the interactive display, then closes the
// monitor. Quitting, the end of the input and a cancelled context are
// normal exits.
func (m *Monitor) RunTUI(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			_ = m.Close()
			panic(r)
		}
	}()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	// keys cannot be read from stdin while it carries the signal
	if p := m.cfg.Input.Path; (p == "" || p == "-") && !m.cfg.Input.Simulate {
		opts = append(opts, tea.WithInputTTY())
	}

	final, err := tea.NewProgram(newModel(ctx, m), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}

	var loopErr error
	if model, ok := final.(*Model); ok {
		loopErr = model.err
	}

	return errors.Join(err, loopErr, m.Close())
}
