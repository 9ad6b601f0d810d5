package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/eyestrain/internal/config"
	"github.com/ayoisaiah/eyestrain/internal/osutil"
	"github.com/ayoisaiah/eyestrain/internal/report"
	"github.com/ayoisaiah/eyestrain/internal/source"
	"github.com/ayoisaiah/eyestrain/internal/strain"
)

const sessionStart = 1709631000.0

type fakeSource struct {
	err     error
	samples []source.Sample
	closed  int
}

func (f *fakeSource) Next(ctx context.Context) (source.Sample, error) {
	if err := ctx.Err(); err != nil {
		return source.Sample{}, err
	}

	if len(f.samples) == 0 {
		if f.err != nil {
			return source.Sample{}, f.err
		}

		return source.Sample{}, io.EOF
	}

	s := f.samples[0]
	f.samples = f.samples[1:]

	return s, nil
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

type fakeNotifier struct {
	messages []string
	mu       sync.Mutex
}

func (f *fakeNotifier) Notify(_, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, message)

	return nil
}

// stuckNotifier blocks every notification until release is closed.
type stuckNotifier struct {
	release chan struct{}
}

func (s *stuckNotifier) Notify(string, string) error {
	<-s.release
	return nil
}

func ratio(v float64) *float64 {
	return &v
}

func stamped(ts, r float64) source.Sample {
	return source.Sample{Time: ts, Stamped: true, Ratio: ratio(r)}
}

// blinkSamples returns 20 frames at 10 fps with one blink over frames 5-7.
func blinkSamples(start float64) []source.Sample {
	samples := make([]source.Sample, 20)

	for i := range samples {
		r := 0.3
		if i >= 5 && i <= 7 {
			r = 0.1
		}

		samples[i] = stamped(start+float64(i)*0.1, r)
	}

	return samples
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Window: config.WindowConfig{Duration: time.Minute},
		Thresholds: config.ThresholdsConfig{
			Blink:   0.25,
			Perclos: 0.25,
		},
		Recommendation: config.RecommendationConfig{
			Cooldown: 5 * time.Minute,
			Notify:   true,
		},
		Report: config.ReportConfig{
			Dir: t.TempDir(),
			UTC: true,
		},
		Input: config.InputConfig{Replay: true, Plain: true},
	}
}

func TestReplay(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{samples: blinkSamples(sessionStart)}

	var out bytes.Buffer

	notifier := &fakeNotifier{}

	mon, err := New(cfg, src, WithOutput(&out), WithNotifier(notifier))
	require.NoError(t, err)
	assert.Nil(t, mon.Engine())

	require.NoError(t, mon.Run(context.Background()))

	r, files := mon.Report()
	require.NotNil(t, r)

	assert.Equal(t, 20, r.Summary.TotalFrames)
	assert.Equal(t, 1, r.Summary.TotalBlinks)
	assert.InDelta(t, sessionStart, r.Summary.Start, 1e-6)
	assert.InDelta(t, 1.9, r.Summary.DurationSeconds, 1e-5)
	assert.InDelta(t, 300, r.Summary.AvgBlinkDurationMs, 0.01)

	assert.Equal(t,
		filepath.Join(cfg.Report.Dir, "session_20240305_093000.txt"),
		files.Summary,
	)
	assert.Equal(t,
		filepath.Join(cfg.Report.Dir, "session_20240305_093000.csv"),
		files.Buckets,
	)

	for _, path := range files.Paths() {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	assert.Contains(t, out.String(), "Report saved to")
	assert.Equal(t, 1, src.closed)

	// 15% of the frames are closed
	assert.Equal(t, strain.Mild, r.Summary.Level)

	// the first frame has no blinks in its window and raises the only alert
	assert.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "20-20-20")
}

func TestCloseRunsOnce(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{samples: blinkSamples(sessionStart)}

	mon, err := New(cfg, src, WithOutput(io.Discard))
	require.NoError(t, err)

	require.NoError(t, mon.Run(context.Background()))
	require.NoError(t, mon.Close())

	assert.Equal(t, 1, src.closed)
	assert.True(t, mon.Engine().Ended())
}

func TestCloseDoesNotWaitForStuckNotification(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{samples: blinkSamples(sessionStart)}
	notifier := &stuckNotifier{release: make(chan struct{})}

	defer close(notifier.release)

	mon, err := New(cfg, src, WithOutput(io.Discard), WithNotifier(notifier))
	require.NoError(t, err)

	mon.alertWait = 50 * time.Millisecond

	done := make(chan error, 1)

	go func() {
		done <- mon.Run(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run blocked on a pending notification")
	}

	assert.Equal(t, 1, src.closed)

	_, files := mon.Report()
	assert.Len(t, files.Paths(), 2)
}

func TestEmptyReplay(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{}

	mon, err := New(cfg, src, WithOutput(io.Discard))
	require.NoError(t, err)

	err = mon.Run(context.Background())
	assert.ErrorIs(t, err, errEmptyReplay)
	assert.Equal(t, 1, src.closed)

	entries, err := os.ReadDir(cfg.Report.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSourceErrorStillWritesReport(t *testing.T) {
	cfg := testConfig(t)
	failure := errors.New("device unplugged")
	src := &fakeSource{samples: blinkSamples(sessionStart), err: failure}

	mon, err := New(cfg, src, WithOutput(io.Discard))
	require.NoError(t, err)

	err = mon.Run(context.Background())
	assert.ErrorIs(t, err, errReadSource)
	assert.ErrorIs(t, err, failure)

	r, files := mon.Report()
	require.NotNil(t, r)
	assert.Equal(t, 20, r.Summary.TotalFrames)
	assert.Len(t, files.Paths(), 2)
}

func TestReportWriteFailureIsReported(t *testing.T) {
	cfg := testConfig(t)

	blocker := filepath.Join(cfg.Report.Dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	cfg.Report.Dir = filepath.Join(blocker, "reports")

	src := &fakeSource{samples: blinkSamples(sessionStart)}

	var out bytes.Buffer

	mon, err := New(cfg, src, WithOutput(&out))
	require.NoError(t, err)

	err = mon.Run(context.Background())
	require.Error(t, err)

	// the summary is still printed and the source released
	assert.Contains(t, out.String(), "strain level")
	assert.Equal(t, 1, src.closed)
}

func TestReplayTimestamps(t *testing.T) {
	cfg := testConfig(t)

	mon, err := New(cfg, &fakeSource{}, WithOutput(io.Discard))
	require.NoError(t, err)

	_, ok := mon.Handle(source.Sample{Ratio: ratio(0.3)})
	assert.False(t, ok, "unstamped samples are dropped in replay mode")
	assert.Nil(t, mon.Engine())

	res, ok := mon.Handle(stamped(100, 0.3))
	require.True(t, ok)
	assert.Equal(t, 100.0, res.Time)
	assert.Equal(t, 100.0, mon.Engine().Start())

	res, ok = mon.Handle(stamped(99, 0.3))
	require.True(t, ok)
	assert.Equal(t, 100.0, res.Time, "out of order samples are clamped")

	_, ok = mon.Handle(source.Sample{Time: 101, Stamped: true})
	assert.False(t, ok)
	assert.Equal(t, 1, mon.NoSignal())

	// ticks are ignored when replaying
	assert.Equal(t, 100.0, mon.Tick().Time)

	require.NoError(t, mon.Close())

	r, _ := mon.Report()
	assert.InDelta(t, 1, r.Summary.DurationSeconds, 1e-9)
}

func TestLive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.Replay = false
	cfg.Window.Duration = 10 * time.Second

	now := sessionStart
	clock := func() float64 {
		return now
	}

	mon, err := New(cfg, &fakeSource{}, WithOutput(io.Discard), WithClock(clock))
	require.NoError(t, err)
	require.NotNil(t, mon.Engine())
	assert.Equal(t, sessionStart, mon.Engine().Start())

	for i := range 10 {
		now = sessionStart + float64(i)*0.1

		r := 0.3
		if i == 4 {
			r = 0.1
		}

		// sample timestamps are ignored in live mode
		_, ok := mon.Handle(stamped(0, r))
		require.True(t, ok)
	}

	res := mon.Last()
	assert.Equal(t, 1, res.Metrics.BlinksInWindow)
	assert.InDelta(t, sessionStart+0.9, res.Time, 1e-9)

	now = sessionStart + 30
	res = mon.Tick()
	assert.Zero(t, res.Metrics.BlinksInWindow)
	assert.Equal(t, 1, res.TotalBlinks)

	now = sessionStart + 60
	require.NoError(t, mon.Close())

	r, _ := mon.Report()
	assert.InDelta(t, 60, r.Summary.DurationSeconds, 1e-9)
	assert.InDelta(t, 1, r.Summary.BlinksPerMinute, 1e-9)
}

func TestNotificationsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recommendation.Notify = false

	notifier := &fakeNotifier{}

	mon, err := New(
		cfg,
		&fakeSource{samples: blinkSamples(sessionStart)},
		WithOutput(io.Discard),
		WithNotifier(notifier),
	)
	require.NoError(t, err)
	require.NoError(t, mon.Run(context.Background()))

	assert.Empty(t, notifier.messages)
}

func TestJSONOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.JSON = true

	var out bytes.Buffer

	mon, err := New(
		cfg,
		&fakeSource{samples: blinkSamples(sessionStart)},
		WithOutput(&out),
	)
	require.NoError(t, err)
	require.NoError(t, mon.Run(context.Background()))

	var got struct {
		Report struct {
			Summary struct {
				Level       string `json:"final_level"`
				StartISO    string `json:"start_iso"`
				EndISO      string `json:"end_iso"`
				TotalFrames int    `json:"total_frames"`
			} `json:"summary"`
			Minutes []json.RawMessage `json:"minutes"`
		} `json:"report"`
		Files map[string]string `json:"files"`
	}

	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.Equal(t, 20, got.Report.Summary.TotalFrames)
	assert.Equal(t, "Mild", got.Report.Summary.Level)
	assert.Equal(t, "2024-03-05T09:30:00", got.Report.Summary.StartISO)
	assert.Equal(t, "2024-03-05T09:30:01.900000", got.Report.Summary.EndISO)
	assert.Len(t, got.Report.Minutes, 1)
	assert.Contains(t, got.Files["summary"], "session_20240305_093000.txt")
}

func TestReportCmd(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("requires a POSIX shell")
	}

	cfg := testConfig(t)
	cfg.Input.JSON = true
	cfg.Report.Cmd = `sh -c 'echo "done: $EYESTRAIN_SUMMARY"'`

	var out bytes.Buffer

	mon, err := New(
		cfg,
		&fakeSource{samples: blinkSamples(sessionStart)},
		WithOutput(&out),
	)
	require.NoError(t, err)
	require.NoError(t, mon.Run(context.Background()))

	assert.Contains(t, out.String(),
		"done: "+filepath.Join(cfg.Report.Dir, "session_20240305_093000.txt"))
}

func TestReportCmdParseError(t *testing.T) {
	err := runReportCmd(`echo "unterminated`, reportFilesForTest(), io.Discard)
	assert.ErrorIs(t, err, errParseReportCmd)

	assert.NoError(t, runReportCmd("", reportFilesForTest(), io.Discard))
}

func TestStatusLine(t *testing.T) {
	cfg := testConfig(t)

	mon, err := New(cfg, &fakeSource{}, WithOutput(io.Discard))
	require.NoError(t, err)

	res, ok := mon.Handle(stamped(1, 0.3))
	require.True(t, ok)

	line := statusLine(&res)
	assert.True(t, strings.Contains(line, "PERCLOS"), line)
	assert.Contains(t, line, "High")
}

func TestModelUpdate(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{samples: blinkSamples(sessionStart)}

	mon, err := New(cfg, src, WithOutput(io.Discard))
	require.NoError(t, err)

	model := newModel(context.Background(), mon)

	// drive the read loop by hand
	cmd := model.Init()

	for cmd != nil {
		msg := cmd()

		if _, ok := msg.(tea.QuitMsg); ok {
			break
		}

		_, cmd = model.Update(msg)
	}

	assert.NoError(t, model.err)
	require.NotNil(t, model.lastBlink)
	assert.InDelta(t, 300, model.lastBlink.DurationMs, 0.01)
	assert.Equal(t, 1, model.res.TotalBlinks)

	// 3 of 20 frames closed puts PERCLOS at 15%, which is Mild whatever
	// the blink duration rounds to
	assert.Equal(t, strain.Mild, model.res.Level)

	view := model.View()
	assert.Contains(t, view, "MILD STRAIN")
	assert.NotContains(t, view, "HIGH STRAIN")
	assert.Contains(t, view, "replay")

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "alert cooldown")

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	require.NoError(t, mon.Close())
}

func reportFilesForTest() report.Files {
	return report.Files{Summary: "summary.txt", Buckets: "buckets.csv"}
}
