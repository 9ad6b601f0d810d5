// Package blink turns the openness signal into discrete blink events
package blink

import "github.com/ayoisaiah/eyestrain/internal/models"

// DefaultThreshold is the openness ratio below which the eye counts as shut
// for blink detection.
const DefaultThreshold = 0.25

// State is the state of the detector: either Open or Closed.
type State interface {
	state()
}

// Open means the eye is open and no blink is in progress.
type Open struct{}

// Closed means the eye has been shut since the given time.
type Closed struct {
	Since float64
}

func (Open) state()   {}
func (Closed) state() {}

// Detector is a two-state machine that emits a blink on every completed
// open-closed-open transition.
type Detector struct {
	state     State
	threshold float64
	total     int
}

// NewDetector returns a Detector in the Open state.
func NewDetector(threshold float64) *Detector {
	return &Detector{
		state:     Open{},
		threshold: threshold,
	}
}

// Observe feeds one sample to the detector. It returns the blink completed
// by this sample, if any.
func (d *Detector) Observe(ts, ratio float64) (models.Blink, bool) {
	shut := ratio < d.threshold

	switch s := d.state.(type) {
	case Open:
		if shut {
			d.state = Closed{Since: ts}
		}
	case Closed:
		if !shut {
			d.state = Open{}
			d.total++

			return models.NewBlink(s.Since, ts), true
		}
	}

	return models.Blink{}, false
}

// State returns the current state.
func (d *Detector) State() State {
	return d.state
}

// Pending returns the start of the blink in progress, if the eye is
// currently shut.
func (d *Detector) Pending() (float64, bool) {
	if s, ok := d.state.(Closed); ok {
		return s.Since, true
	}

	return 0, false
}

// Total returns the number of blinks emitted so far.
func (d *Detector) Total() int {
	return d.total
}

// Threshold returns the blink threshold in use.
func (d *Detector) Threshold() float64 {
	return d.threshold
}
