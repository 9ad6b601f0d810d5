package monitor

import (
	"log/slog"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/eyestrain/internal/session"
)

const alertTitle = "eyestrain"

// Notifier delivers strain alerts to the user.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier shows system notifications.
type DesktopNotifier struct {
	Icon string
}

func (d DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, d.Icon)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, string) error {
	return nil
}

// alert sends the recommendations of a High result in the background.
func (m *Monitor) alert(res *session.Result) {
	slog.Info("strain alert",
		slog.Float64("time", res.Time),
		slog.Float64("blinks_per_min", res.Metrics.BlinksPerMinute),
		slog.Float64("perclos", res.Metrics.Perclos),
		slog.Float64("avg_blink_duration_ms", res.Metrics.AvgBlinkDurationMs),
	)

	if !m.cfg.Recommendation.Notify {
		return
	}

	msg := strings.Join(res.Recommendations, "\n")

	m.alerts.Add(1)

	go func() {
		defer m.alerts.Done()

		if err := m.notifier.Notify(alertTitle, msg); err != nil {
			slog.Warn("unable to display notification", slog.Any("error", err))
		}
	}()
}
