// Package report builds and writes end-of-session eye-strain reports
package report

import (
	"math"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/models"
	"github.com/ayoisaiah/eyestrain/internal/stats"
	"github.com/ayoisaiah/eyestrain/internal/strain"
	"github.com/ayoisaiah/eyestrain/internal/timeutil"
)

// BucketSeconds is the width of each row of the bucketed table.
const BucketSeconds = 60

// Summary holds the session-wide statistics.
type Summary struct {
	Start              float64      `json:"start"`
	End                float64      `json:"end"`
	DurationSeconds    float64      `json:"duration_s"`
	TotalFrames        int          `json:"total_frames"`
	TotalBlinks        int          `json:"total_blinks"`
	BlinksPerMinute    float64      `json:"blinks_per_min"`
	AvgBlinkDurationMs float64      `json:"avg_blink_duration_ms"`
	Perclos            float64      `json:"perclos"`
	AvgOpenness        float64      `json:"avg_ear"`
	Level              strain.Level `json:"final_level"`
}

// Bucket holds the statistics of one minute of the session.
type Bucket struct {
	Index              int     `json:"minute_index"`
	Start              float64 `json:"start"`
	Frames             int     `json:"frames"`
	Blinks             int     `json:"blinks_in_min"`
	BlinksPerMinute    float64 `json:"blinks_per_min"`
	Perclos            float64 `json:"perclos"`
	AvgBlinkDurationMs float64 `json:"avg_blink_ms"`
}

// Report is the result of a finished session.
type Report struct {
	Summary Summary  `json:"summary"`
	Buckets []Bucket `json:"minutes"`
}

// StartTime returns the session start in loc.
func (s *Summary) StartTime(loc *time.Location) time.Time {
	return timeutil.FromSeconds(s.Start, loc)
}

// EndTime returns the session end in loc.
func (s *Summary) EndTime(loc *time.Location) time.Time {
	return timeutil.FromSeconds(s.End, loc)
}

// Generate computes the report of a session that ended at the given time.
func Generate(log *models.Log, end float64) Report {
	return Report{
		Summary: Summarize(log, end),
		Buckets: Buckets(log, end),
	}
}

// Summarize computes session-wide statistics over the whole log. The blink
// rate uses the wall-clock duration of the session.
func Summarize(log *models.Log, end float64) Summary {
	duration := math.Max(0, end-log.Start)

	s := Summary{
		Start:              log.Start,
		End:                end,
		DurationSeconds:    duration,
		TotalFrames:        len(log.Frames),
		TotalBlinks:        len(log.Blinks),
		BlinksPerMinute:    stats.Rate(len(log.Blinks), duration),
		AvgBlinkDurationMs: stats.MeanBlinkDuration(log.Blinks),
		Perclos:            stats.Perclos(log.Frames),
		AvgOpenness:        stats.MeanOpenness(log.Frames),
	}

	s.Level = strain.Classify(models.Metrics{
		BlinksPerMinute:    s.BlinksPerMinute,
		Perclos:            s.Perclos,
		AvgOpenness:        s.AvgOpenness,
		AvgBlinkDurationMs: s.AvgBlinkDurationMs,
		BlinksInWindow:     s.TotalBlinks,
	})

	return s
}

// BucketCount returns the number of one-minute buckets needed to cover a
// session of the given length. There is always at least one.
func BucketCount(duration float64) int {
	n := int(math.Ceil(duration / BucketSeconds))

	return max(1, n)
}

// Buckets partitions the session into consecutive one-minute buckets
// aligned to its start. Frames are assigned by time and blinks by start
// time, each to the bucket with start <= t < end. A sample taken exactly
// at the session end belongs to the last bucket.
func Buckets(log *models.Log, end float64) []Bucket {
	n := BucketCount(end - log.Start)

	frames := make([][]models.Frame, n)
	blinks := make([][]models.Blink, n)

	for _, f := range log.Frames {
		if i, ok := bucketIndex(log.Start, end, f.Time, n); ok {
			frames[i] = append(frames[i], f)
		}
	}

	for _, b := range log.Blinks {
		if i, ok := bucketIndex(log.Start, end, b.Start, n); ok {
			blinks[i] = append(blinks[i], b)
		}
	}

	buckets := make([]Bucket, n)

	for i := range buckets {
		buckets[i] = Bucket{
			Index:              i,
			Start:              bucketStart(log.Start, i),
			Frames:             len(frames[i]),
			Blinks:             len(blinks[i]),
			BlinksPerMinute:    float64(len(blinks[i])),
			Perclos:            stats.Perclos(frames[i]),
			AvgBlinkDurationMs: stats.MeanBlinkDuration(blinks[i]),
		}
	}

	return buckets
}

func bucketStart(start float64, i int) float64 {
	return start + float64(i*BucketSeconds)
}

// bucketIndex finds the bucket holding ts. The estimate from the division
// is corrected against the actual bucket bounds so the assignment agrees
// with start <= ts < start+60 exactly. The session end is closed: ts ==
// end lands in the last bucket even when end is a bucket boundary.
func bucketIndex(start, end, ts float64, n int) (int, bool) {
	if ts == end && ts >= start {
		return n - 1, true
	}

	i := int(math.Floor((ts - start) / BucketSeconds))

	if i > 0 && ts < bucketStart(start, i) {
		i--
	}

	if i+1 < n && ts >= bucketStart(start, i+1) {
		i++
	}

	if i < 0 || i >= n || ts < bucketStart(start, i) || ts >= bucketStart(start, i+1) {
		return 0, false
	}

	return i, true
}
