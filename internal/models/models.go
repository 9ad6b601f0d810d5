// Package models defines the samples, events and snapshots that flow
// through the eyestrain pipeline
package models

// Frame is a single openness sample. Time is in seconds.
type Frame struct {
	Time   float64 `json:"t"`
	Ratio  float64 `json:"ratio"`
	Closed bool    `json:"closed"`
}

// Blink is a completed closed-eye interval.
type Blink struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	DurationMs float64 `json:"duration_ms"`
}

// NewBlink builds a Blink from its boundaries. An end that precedes the
// start is clamped so the duration is never negative.
func NewBlink(start, end float64) Blink {
	if end < start {
		end = start
	}

	return Blink{
		Start:      start,
		End:        end,
		DurationMs: (end - start) * 1000,
	}
}

// Metrics is a snapshot of derived statistics over a set of frames and
// blinks.
type Metrics struct {
	BlinksPerMinute    float64 `json:"blinks_per_min"`
	Perclos            float64 `json:"perclos"`
	AvgOpenness        float64 `json:"avg_ear"`
	AvgBlinkDurationMs float64 `json:"avg_blink_duration_ms"`
	BlinksInWindow     int     `json:"blinks_in_window"`
}

// Log is the full history of a session. It only grows.
type Log struct {
	Frames []Frame `json:"frames"`
	Blinks []Blink `json:"blinks"`
	Start  float64 `json:"session_start"`
}

// AddFrame appends a frame to the history.
func (l *Log) AddFrame(f Frame) {
	l.Frames = append(l.Frames, f)
}

// AddBlink appends a blink to the history.
func (l *Log) AddBlink(b Blink) {
	l.Blinks = append(l.Blinks, b)
}
