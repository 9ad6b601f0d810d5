// Package session runs a single eye-strain monitoring session: it records
// the openness signal, detects blinks, keeps the rolling window and
// produces the final report
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/blink"
	"github.com/ayoisaiah/eyestrain/internal/models"
	"github.com/ayoisaiah/eyestrain/internal/report"
	"github.com/ayoisaiah/eyestrain/internal/stats"
	"github.com/ayoisaiah/eyestrain/internal/strain"
	"github.com/ayoisaiah/eyestrain/internal/window"
)

// Settings configures an Engine.
type Settings struct {
	Window           time.Duration
	BlinkThreshold   float64
	PerclosThreshold float64
	// Cooldown is the minimum time between two High strain alerts.
	Cooldown time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Window:           window.DefaultSpan,
		BlinkThreshold:   blink.DefaultThreshold,
		PerclosThreshold: blink.DefaultThreshold,
		Cooldown:         5 * time.Minute,
	}
}

// Result is the outcome of processing one frame or one clock tick.
type Result struct {
	// Blink is the blink completed by this frame, if any.
	Blink           *models.Blink
	Recommendations []string
	Metrics         models.Metrics
	Time            float64
	TotalBlinks     int
	Level           strain.Level
	// Alert is set on the first High result after the cooldown elapsed.
	Alert bool
}

// Engine owns the state of one session. All methods are safe for
// concurrent use; mutations are serialised.
type Engine struct {
	log      *models.Log
	window   *window.Buffer
	detector *blink.Detector
	advisor  *advisor
	settings Settings
	mu       sync.Mutex
	ended    bool
}

// New starts a session at the given time.
func New(settings Settings, start float64) *Engine {
	slog.Info("session started",
		slog.Float64("start", start),
		slog.Duration("window", settings.Window),
		slog.Float64("blink_threshold", settings.BlinkThreshold),
		slog.Float64("perclos_threshold", settings.PerclosThreshold),
	)

	return &Engine{
		settings: settings,
		log:      &models.Log{Start: start},
		window:   window.New(settings.Window),
		detector: blink.NewDetector(settings.BlinkThreshold),
		advisor:  newAdvisor(settings.Cooldown),
	}
}

// Start returns the session start time.
func (e *Engine) Start() float64 {
	return e.log.Start
}

// Settings returns the settings the engine runs with.
func (e *Engine) Settings() Settings {
	return e.settings
}

// ProcessFrame handles one frame. A nil ratio means the detector found no
// face in the frame: nothing is recorded and false is returned. Frames that
// arrive after EndSession are dropped the same way.
func (e *Engine) ProcessFrame(ts float64, ratio *float64) (Result, bool) {
	if ratio == nil {
		return Result{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ended {
		return Result{}, false
	}

	e.record(ts, *ratio)

	var emitted *models.Blink

	if b, ok := e.detector.Observe(ts, *ratio); ok {
		e.window.AddBlink(b)
		e.log.AddBlink(b)

		emitted = &b
	}

	res := e.snapshot(ts)
	res.Blink = emitted

	return res, true
}

// Snapshot purges the window at now and returns fresh metrics without
// recording anything.
func (e *Engine) Snapshot(now float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot(now)
}

// record stores a frame in both the window and the session log.
func (e *Engine) record(ts, ratio float64) {
	f := models.Frame{
		Time:   ts,
		Ratio:  ratio,
		Closed: ratio < e.settings.PerclosThreshold,
	}

	e.window.AddFrame(f)
	e.log.AddFrame(f)
}

func (e *Engine) snapshot(now float64) Result {
	e.window.Purge(now)

	m := stats.Window(e.window.Frames(), e.window.Blinks(), e.window.Span())
	level := strain.Classify(m)

	res := Result{
		Time:        now,
		Metrics:     m,
		Level:       level,
		TotalBlinks: e.detector.Total(),
	}

	if level == strain.High {
		res.Recommendations = strain.Recommendations
		res.Alert = e.advisor.fire(now)
	}

	return res
}

// TotalBlinks returns the number of blinks detected so far.
func (e *Engine) TotalBlinks() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.detector.Total()
}

// Eyes reports whether the eyes are currently shut, and since when.
func (e *Engine) Eyes() (closedSince float64, closed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.detector.Pending()
}

// EndSession closes the session at the given time and builds its report.
// A blink still in progress is discarded. Subsequent calls return
// ErrSessionEnded.
func (e *Engine) EndSession(end float64) (report.Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ended {
		return report.Report{}, ErrSessionEnded
	}

	e.ended = true

	if since, ok := e.detector.Pending(); ok {
		slog.Info("discarding blink in progress at session end",
			slog.Float64("since", since),
		)
	}

	r := report.Generate(e.log, end)

	slog.Info("session ended",
		slog.Float64("duration_s", r.Summary.DurationSeconds),
		slog.Int("frames", r.Summary.TotalFrames),
		slog.Int("blinks", r.Summary.TotalBlinks),
		slog.String("level", r.Summary.Level.String()),
	)

	return r, nil
}

// Ended reports whether EndSession has run.
func (e *Engine) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ended
}
