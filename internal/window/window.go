// Package window keeps the time-bounded view of recent frames and blinks
// used for live metrics
package window

import (
	"time"

	"github.com/ayoisaiah/eyestrain/internal/models"
)

// DefaultSpan is the width of the rolling window.
const DefaultSpan = 60 * time.Second

// Buffer holds two FIFO queues ordered by time. Elements are appended at
// the tail and evicted from the head.
type Buffer struct {
	frames []models.Frame
	blinks []models.Blink
	span   time.Duration
}

// New returns a Buffer covering the given span. A non-positive span falls
// back to DefaultSpan.
func New(span time.Duration) *Buffer {
	if span <= 0 {
		span = DefaultSpan
	}

	return &Buffer{span: span}
}

// Span returns the width of the window.
func (b *Buffer) Span() time.Duration {
	return b.span
}

// Seconds returns the width of the window in seconds.
func (b *Buffer) Seconds() float64 {
	return b.span.Seconds()
}

// AddFrame appends a frame at the tail.
func (b *Buffer) AddFrame(f models.Frame) {
	b.frames = append(b.frames, f)
}

// AddBlink appends a blink at the tail.
func (b *Buffer) AddBlink(bl models.Blink) {
	b.blinks = append(b.blinks, bl)
}

// Purge evicts every frame older than now minus the span, and every blink
// that started before that cutoff. It returns the number of evicted
// frames and blinks.
func (b *Buffer) Purge(now float64) (frames, blinks int) {
	cutoff := now - b.Seconds()

	for frames < len(b.frames) && b.frames[frames].Time < cutoff {
		frames++
	}

	for blinks < len(b.blinks) && b.blinks[blinks].Start < cutoff {
		blinks++
	}

	b.frames = shift(b.frames, frames)
	b.blinks = shift(b.blinks, blinks)

	return frames, blinks
}

// Frames returns the frames currently in the window. The slice must not be
// modified.
func (b *Buffer) Frames() []models.Frame {
	return b.frames
}

// Blinks returns the blinks currently in the window. The slice must not be
// modified.
func (b *Buffer) Blinks() []models.Blink {
	return b.blinks
}

// Len returns the number of frames and blinks in the window.
func (b *Buffer) Len() (frames, blinks int) {
	return len(b.frames), len(b.blinks)
}

// shift drops the first n elements. The remainder is copied to a fresh
// array once the dropped head outweighs it.
func shift[T any](s []T, n int) []T {
	if n == 0 {
		return s
	}

	rest := s[n:]

	if len(rest) < n {
		rest = append(s[:0:0], rest...)
	}

	return rest
}
