package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/eyestrain/internal/timeutil"
)

// Full scale of the blink rate bar. A healthy rate sits in the upper half.
const blinkRateScale = 30

func (t *Model) headerView() string {
	mode := "live"
	if !t.mon.cfg.Live() {
		mode = "replay"
	}

	var elapsed float64
	if e := t.mon.Engine(); e != nil {
		elapsed = t.res.Time - e.Start()
	}

	m, s := timeutil.SecsToMinsAndSecs(max(0, elapsed))

	return t.style.title.Render("eyestrain") +
		t.style.hint.Render(fmt.Sprintf("  %s  %02d:%02d", mode, m, s))
}

func (t *Model) row(label, value string) string {
	return t.style.label.Render(label) + t.style.value.Render(value) + "\n"
}

func (t *Model) metricsView() string {
	var s strings.Builder

	m := t.res.Metrics

	s.WriteString(t.row("Blinks/min", fmt.Sprintf("%.1f", m.BlinksPerMinute)))
	s.WriteString(t.rate.ViewAs(min(1, m.BlinksPerMinute/blinkRateScale)) + "\n")
	s.WriteString(t.row("PERCLOS", fmt.Sprintf("%.1f%%", m.Perclos)))
	s.WriteString(t.perclos.ViewAs(m.Perclos/100) + "\n")
	s.WriteString(t.row("Avg blink", fmt.Sprintf("%.0f ms", m.AvgBlinkDurationMs)))
	s.WriteString(t.row("Avg EAR", fmt.Sprintf("%.3f", m.AvgOpenness)))
	s.WriteString(t.row("Blinks", fmt.Sprintf(
		"%d (%d in window)", t.res.TotalBlinks, m.BlinksInWindow,
	)))

	if t.lastBlink != nil {
		s.WriteString(t.row("Last blink", fmt.Sprintf("%.0f ms", t.lastBlink.DurationMs)))
	}

	if n := t.mon.NoSignal(); n > 0 {
		s.WriteString(t.row("No face", fmt.Sprintf("%d frames", n)))
	}

	return s.String()
}

func (t *Model) thresholdsView() string {
	settings := t.mon.cfg.Session()

	return t.style.hint.Render(fmt.Sprintf(
		"window %s  blink < %.2f  closed < %.2f  alert cooldown %s",
		settings.Window,
		settings.BlinkThreshold,
		settings.PerclosThreshold,
		settings.Cooldown,
	))
}

func (t *Model) View() string {
	var s strings.Builder

	level := t.res.Level

	s.WriteString(t.headerView())
	s.WriteString("\n\n")
	s.WriteString(t.style.level(level).Render(
		strings.ToUpper(level.String()) + " STRAIN",
	))
	s.WriteString("\n" + t.style.hint.Render(level.Advice()) + "\n\n")
	s.WriteString(t.metricsView())

	if len(t.res.Recommendations) > 0 {
		s.WriteString("\n" + t.style.warn.Render(
			strings.Join(t.res.Recommendations, "\n"),
		) + "\n")
	}

	if t.showHelp {
		s.WriteString("\n" + t.thresholdsView() + "\n")
	}

	s.WriteString("\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.help,
		defaultKeymap.quit,
	}))

	return t.style.base.Render(s.String())
}
