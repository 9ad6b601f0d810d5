package report

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/eyestrain/internal/models"
	"github.com/ayoisaiah/eyestrain/internal/strain"
	"github.com/ayoisaiah/eyestrain/internal/testutil"
)

// 2024-03-05T09:30:00Z
const start = 1709631000.0

// fixture is a 150s session sampled every 0.5s with one 500ms blink every
// 10s.
func fixture() *models.Log {
	log := &models.Log{Start: start}

	for i := range 300 {
		ratio := 0.3
		if i%20 == 5 {
			ratio = 0.1
		}

		log.AddFrame(models.Frame{
			Time:   start + float64(i)*0.5,
			Ratio:  ratio,
			Closed: ratio < 0.25,
		})
	}

	for i := range 15 {
		s := start + float64(i)*10 + 2.5
		log.AddBlink(models.NewBlink(s, s+0.5))
	}

	return log
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture(), start+150)

	assert.Equal(t, 150.0, s.DurationSeconds)
	assert.Equal(t, 300, s.TotalFrames)
	assert.Equal(t, 15, s.TotalBlinks)
	assert.InDelta(t, 6, s.BlinksPerMinute, 1e-9)
	assert.InDelta(t, 500, s.AvgBlinkDurationMs, 1e-9)
	assert.InDelta(t, 5, s.Perclos, 1e-9)
	assert.InDelta(t, 0.29, s.AvgOpenness, 1e-9)
	assert.Equal(t, strain.High, s.Level)
}

func TestSummarizeEmptySession(t *testing.T) {
	s := Summarize(&models.Log{Start: start}, start)

	assert.Equal(t, Summary{Start: start, End: start, Level: strain.High}, s)
}

func TestBucketCount(t *testing.T) {
	cases := []struct {
		duration float64
		want     int
	}{
		{0, 1},
		{-5, 1},
		{0.1, 1},
		{60, 1},
		{60.01, 2},
		{150, 3},
		{3600, 60},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, BucketCount(tc.duration), "duration %v", tc.duration)
	}
}

func TestBucketsCoverSession(t *testing.T) {
	buckets := Buckets(fixture(), start+150)

	require.Len(t, buckets, 3)

	for i, b := range buckets {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, start+float64(i)*60, b.Start)
		assert.Equal(t, float64(b.Blinks), b.BlinksPerMinute)
	}

	assert.Equal(t, 60, buckets[2].Frames)
	assert.Equal(t, 3, buckets[2].Blinks)

	var frames, blinks int

	for _, b := range buckets {
		frames += b.Frames
		blinks += b.Blinks
	}

	assert.Equal(t, 300, frames)
	assert.Equal(t, 15, blinks)
}

func TestBucketsCoverSessionEndingOnBoundary(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		buckets  int
	}{
		{name: "one minute", duration: 60, buckets: 1},
		{name: "two minutes", duration: 120, buckets: 2},
		{name: "empty session", duration: 0, buckets: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := &models.Log{Start: start}

			for i := 0; float64(i) <= tc.duration; i++ {
				log.AddFrame(models.Frame{Time: start + float64(i)})
			}

			r := Generate(log, start+tc.duration)

			require.Len(t, r.Buckets, tc.buckets)

			var frames int
			for _, b := range r.Buckets {
				frames += b.Frames
			}

			assert.Equal(t, r.Summary.TotalFrames, frames)
			assert.Equal(t, len(log.Frames), frames)
		})
	}
}

func TestBucketBoundaries(t *testing.T) {
	log := &models.Log{Start: start}

	for _, ts := range []float64{start, start + 59.999, start + 60, start + 119.5, start + 120} {
		log.AddFrame(models.Frame{Time: ts})
	}

	buckets := Buckets(log, start+120)

	require.Len(t, buckets, 2)
	assert.Equal(t, 2, buckets[0].Frames)
	// the frame at the session end closes the last bucket
	assert.Equal(t, 3, buckets[1].Frames)
}

func TestBucketIndex(t *testing.T) {
	cases := []struct {
		ts   float64
		want int
		ok   bool
	}{
		{start - 1, 0, false},
		{start, 0, true},
		{start + 60, 1, true},
		{start + 179.9, 2, true},
		{start + 180, 2, true},
		{start + 180.5, 0, false},
		{math.Nextafter(start+60, 0), 0, true},
	}

	for _, tc := range cases {
		got, ok := bucketIndex(start, start+180, tc.ts, 3)
		assert.Equal(t, tc.ok, ok, "ts %v", tc.ts)
		assert.Equal(t, tc.want, got, "ts %v", tc.ts)
	}
}

func TestWriteSummary(t *testing.T) {
	s := Summarize(fixture(), start+150)

	var buf bytes.Buffer

	require.NoError(t, WriteSummary(&buf, &s, time.UTC))

	testutil.AssertGolden(t, "summary", buf.Bytes())
}

func TestWriteBuckets(t *testing.T) {
	r := Generate(fixture(), start+150)

	var buf bytes.Buffer

	require.NoError(t, WriteBuckets(&buf, r.Buckets, time.UTC))

	testutil.AssertGolden(t, "buckets", buf.Bytes())
}

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := &Writer{Dir: dir, Location: time.UTC}

	r := Generate(fixture(), start+150)

	files, err := w.Write(&r)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "session_20240305_093000.txt"), files.Summary)
	assert.Equal(t, filepath.Join(dir, "session_20240305_093000.csv"), files.Buckets)
	assert.Len(t, files.Paths(), 2)

	b, err := os.ReadFile(files.Buckets)
	require.NoError(t, err)
	testutil.AssertGolden(t, "buckets", b)
}

func TestWriterContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Location: time.UTC}

	r := Generate(fixture(), start+150)

	// A directory in place of the summary file makes that write fail.
	summaryPath, bucketsPath := w.Names(&r.Summary)
	require.NoError(t, os.Mkdir(summaryPath, 0o755))

	files, err := w.Write(&r)

	assert.ErrorIs(t, err, errWriteReport)
	assert.Empty(t, files.Summary)
	assert.Equal(t, bucketsPath, files.Buckets)
	assert.FileExists(t, bucketsPath)
}

func TestPrint(t *testing.T) {
	r := Generate(fixture(), start+150)

	var buf bytes.Buffer

	require.NoError(t, Print(&buf, &r, time.UTC))

	assert.Contains(t, buf.String(), "High strain level")
	assert.Contains(t, buf.String(), "09:32:00")
}

func TestDocument(t *testing.T) {
	r := Generate(fixture(), start+150)

	b, err := json.Marshal(r.Document(time.UTC))
	require.NoError(t, err)

	var got struct {
		Summary struct {
			StartISO string  `json:"start_iso"`
			EndISO   string  `json:"end_iso"`
			Start    float64 `json:"start"`
			Level    string  `json:"final_level"`
		} `json:"summary"`
		Minutes []struct {
			StartISO string `json:"start_iso"`
			Index    int    `json:"minute_index"`
		} `json:"minutes"`
	}

	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "2024-03-05T09:30:00", got.Summary.StartISO)
	assert.Equal(t, "2024-03-05T09:32:30", got.Summary.EndISO)
	assert.InDelta(t, start, got.Summary.Start, 1e-9)
	assert.Equal(t, r.Summary.Level.String(), got.Summary.Level)

	require.Len(t, got.Minutes, 3)
	assert.Equal(t, "2024-03-05T09:31:00", got.Minutes[1].StartISO)
	assert.Equal(t, 2, got.Minutes[2].Index)
}
