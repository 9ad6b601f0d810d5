// Package monitor runs an eye-strain monitoring session: it feeds samples
// from a source to the session engine and publishes the results to the
// display, telemetry and desktop notifications
package monitor

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/config"
	"github.com/ayoisaiah/eyestrain/internal/report"
	"github.com/ayoisaiah/eyestrain/internal/session"
	"github.com/ayoisaiah/eyestrain/internal/source"
	"github.com/ayoisaiah/eyestrain/internal/telemetry"
	"github.com/ayoisaiah/eyestrain/internal/timeutil"
)

// alertWaitTimeout is how long Close waits for notifications in flight.
const alertWaitTimeout = 2 * time.Second

// Monitor owns one session and everything attached to it.
type Monitor struct {
	src       source.Source
	notifier  Notifier
	cfg       *config.Config
	engine    *session.Engine
	exporter  *telemetry.Exporter
	server    *telemetry.Server
	out       io.Writer
	clock     func() float64
	report    *report.Report
	files     report.Files
	last      session.Result
	lastTime  float64
	noSignal  int
	mu        sync.Mutex
	alerts    sync.WaitGroup
	once      sync.Once
	closeErr  error
	// alertWait bounds how long Close waits for pending notifications.
	alertWait time.Duration
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces the wall clock used in live mode.
func WithClock(clock func() float64) Option {
	return func(m *Monitor) {
		m.clock = clock
	}
}

// WithOutput sets where the final report is printed.
func WithOutput(w io.Writer) Option {
	return func(m *Monitor) {
		m.out = w
	}
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Monitor) {
		m.notifier = n
	}
}

// New prepares a session reading from src. In live mode the session starts
// now; in replay mode it starts at the first sample. The telemetry server
// is started when an address is configured.
func New(cfg *config.Config, src source.Source, opts ...Option) (*Monitor, error) {
	m := &Monitor{
		src:       src,
		cfg:       cfg,
		clock:     timeutil.Now,
		out:       config.Stdout,
		notifier:  noopNotifier{},
		alertWait: alertWaitTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	if cfg.Telemetry.Addr != "" {
		m.exporter = telemetry.NewExporter()

		server, err := m.exporter.Serve(cfg.Telemetry.Addr)
		if err != nil {
			return nil, err
		}

		m.server = server
	}

	if cfg.Live() {
		m.lastTime = m.clock()
		m.engine = session.New(cfg.Session(), m.lastTime)
	}

	return m, nil
}

// Handle processes one sample. It returns false when the sample was
// skipped.
func (m *Monitor) Handle(sample source.Sample) (session.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts, ok := m.timestamp(sample)
	if !ok {
		return session.Result{}, false
	}

	if sample.Ratio == nil {
		m.noSignal++

		if m.exporter != nil {
			m.exporter.NoSignal()
		}

		return session.Result{}, false
	}

	res, ok := m.engine.ProcessFrame(ts, sample.Ratio)
	if !ok {
		return res, false
	}

	m.last = res

	if m.exporter != nil {
		m.exporter.Observe(&res)
	}

	if res.Blink != nil {
		slog.Debug("blink",
			slog.Float64("start", res.Blink.Start),
			slog.Float64("duration_ms", res.Blink.DurationMs),
		)
	}

	if res.Alert {
		m.alert(&res)
	}

	return res, true
}

// timestamp picks the time of a sample and keeps time monotonic. In replay
// mode the first stamped sample starts the session; unstamped samples are
// dropped because they cannot be placed in time.
func (m *Monitor) timestamp(sample source.Sample) (float64, bool) {
	if m.cfg.Live() {
		return m.advance(m.clock()), true
	}

	if !sample.Stamped {
		slog.Warn("dropping unstamped sample in replay mode")
		return 0, false
	}

	if m.engine == nil {
		m.lastTime = sample.Time
		m.engine = session.New(m.cfg.Session(), sample.Time)
	}

	return m.advance(sample.Time), true
}

func (m *Monitor) advance(ts float64) float64 {
	if ts < m.lastTime {
		slog.Debug("clamping out of order timestamp",
			slog.Float64("time", ts),
			slog.Float64("last", m.lastTime),
		)

		ts = m.lastTime
	}

	m.lastTime = ts

	return ts
}

// Tick refreshes time-decayed metrics at the current wall-clock time. It
// does nothing in replay mode.
func (m *Monitor) Tick() session.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Live() || m.engine == nil || m.engine.Ended() {
		return m.last
	}

	res := m.engine.Snapshot(m.advance(m.clock()))
	res.Blink = nil

	m.last = res

	if m.exporter != nil {
		m.exporter.Refresh(&res)
	}

	if res.Alert {
		m.alert(&res)
	}

	return res
}

// Last returns the most recent result.
func (m *Monitor) Last() session.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

// NoSignal returns the number of frames without a face.
func (m *Monitor) NoSignal() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.noSignal
}

// Engine returns the session engine, or nil if a replay has not seen a
// sample yet.
func (m *Monitor) Engine() *session.Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.engine
}

// Report returns the final report and the files written for it. It is nil
// until Close has run.
func (m *Monitor) Report() (*report.Report, report.Files) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.report, m.files
}

// Close ends the session, writes the report files, prints the report and
// runs the report command, then releases the source and the telemetry
// server. Only the first call does any work; every call returns the same
// error.
func (m *Monitor) Close() error {
	m.once.Do(func() {
		m.closeErr = m.teardown()
	})

	return m.closeErr
}

func (m *Monitor) teardown() error {
	var errs []error

	m.mu.Lock()
	if err := m.finish(); err != nil {
		errs = append(errs, err)
	}
	m.mu.Unlock()

	m.waitAlerts()

	if err := m.src.Close(); err != nil {
		errs = append(errs, errCloseSource.Wrap(err))
	}

	if m.server != nil {
		if err := m.server.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// waitAlerts waits for notifications still being delivered, for at most
// alertWait.
func (m *Monitor) waitAlerts() {
	done := make(chan struct{})

	go func() {
		m.alerts.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(m.alertWait):
		slog.Warn("notifications still pending at exit",
			slog.Duration("waited", m.alertWait),
		)
	}
}

func (m *Monitor) finish() error {
	if m.engine == nil {
		return errEmptyReplay
	}

	end := m.lastTime
	if m.cfg.Live() {
		end = m.advance(m.clock())
	}

	r, err := m.engine.EndSession(end)
	if err != nil {
		return err
	}

	m.report = &r

	files, writeErr := m.cfg.ReportWriter().Write(&r)
	m.files = files

	for _, path := range files.Paths() {
		slog.Info("report written", slog.String("path", path))
	}

	if writeErr != nil {
		slog.Error("writing report failed", slog.Any("error", writeErr))
	}

	printErr := m.print(&r, files)

	cmdErr := runReportCmd(m.cfg.Report.Cmd, files, m.out)
	if cmdErr != nil {
		slog.Error("report command failed", slog.Any("error", cmdErr))
	}

	return errors.Join(writeErr, printErr, cmdErr)
}
