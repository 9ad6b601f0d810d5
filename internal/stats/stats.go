// Package stats computes eye-strain statistics from frames and blinks
package stats

import (
	"time"

	"github.com/ayoisaiah/eyestrain/internal/models"
)

const secondsInAMinute = 60

// Perclos returns the percentage of frames flagged as closed.
func Perclos(frames []models.Frame) float64 {
	if len(frames) == 0 {
		return 0
	}

	var closed int

	for i := range frames {
		if frames[i].Closed {
			closed++
		}
	}

	return 100 * float64(closed) / float64(len(frames))
}

// MeanOpenness returns the average openness ratio of the frames.
func MeanOpenness(frames []models.Frame) float64 {
	if len(frames) == 0 {
		return 0
	}

	var sum float64

	for i := range frames {
		sum += frames[i].Ratio
	}

	return sum / float64(len(frames))
}

// MeanBlinkDuration returns the average duration of the blinks in
// milliseconds.
func MeanBlinkDuration(blinks []models.Blink) float64 {
	if len(blinks) == 0 {
		return 0
	}

	var sum float64

	for i := range blinks {
		sum += blinks[i].DurationMs
	}

	return sum / float64(len(blinks))
}

// Window computes the metrics of a rolling window of the given span. The
// blink rate is extrapolated from the span, so a 30s window with 5 blinks
// reports 10 blinks per minute.
func Window(
	frames []models.Frame,
	blinks []models.Blink,
	span time.Duration,
) models.Metrics {
	m := models.Metrics{
		Perclos:            Perclos(frames),
		AvgOpenness:        MeanOpenness(frames),
		AvgBlinkDurationMs: MeanBlinkDuration(blinks),
		BlinksInWindow:     len(blinks),
	}

	if seconds := span.Seconds(); seconds > 0 {
		m.BlinksPerMinute = float64(len(blinks)) * (secondsInAMinute / seconds)
	}

	return m
}

// Rate returns count events per minute over the given number of seconds,
// or 0 when no time has elapsed.
func Rate(count int, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}

	return float64(count) / (seconds / secondsInAMinute)
}
