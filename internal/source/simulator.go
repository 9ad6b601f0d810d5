package source

import (
	"context"
	"io"
	"math"
	"math/rand"
	"time"
)

// SimOptions configures a Simulator.
type SimOptions struct {
	// Rate is the number of frames per second.
	Rate float64
	// Duration ends the signal after this much simulated time. Zero runs
	// until the context is cancelled.
	Duration time.Duration
	// BlinkInterval is the mean gap between blinks.
	BlinkInterval time.Duration
	// BlinkLength is the mean time the eyes stay shut.
	BlinkLength time.Duration
	// NoSignal is the probability of a frame without a face.
	NoSignal float64
	Seed     int64
	// Start is the first synthetic timestamp when not Realtime.
	Start float64
	// Realtime paces frames on the wall clock and leaves them unstamped.
	Realtime bool
}

// DefaultSimOptions returns a 30 fps signal with a blink every four
// seconds or so.
func DefaultSimOptions() SimOptions {
	return SimOptions{
		Rate:          30,
		BlinkInterval: 4 * time.Second,
		BlinkLength:   200 * time.Millisecond,
		NoSignal:      0.01,
		Seed:          time.Now().UnixNano(),
	}
}

const (
	openRatio   = 0.3
	closedRatio = 0.08
	noise       = 0.015
)

// Simulator produces a synthetic openness signal: an open baseline with
// noise, broken by periodic blinks.
type Simulator struct {
	rng       *rand.Rand
	ticker    *time.Ticker
	opts      SimOptions
	frame     int
	nextBlink float64
	blinkEnd  float64
}

// NewSimulator returns a simulated Source.
func NewSimulator(opts SimOptions) *Simulator {
	if opts.Rate <= 0 {
		opts.Rate = 30
	}

	if opts.BlinkInterval <= 0 {
		opts.BlinkInterval = 4 * time.Second
	}

	if opts.BlinkLength <= 0 {
		opts.BlinkLength = 200 * time.Millisecond
	}

	s := &Simulator{
		rng:  rand.New(rand.NewSource(opts.Seed)),
		opts: opts,
	}

	s.schedule(0)

	if opts.Realtime {
		s.ticker = time.NewTicker(time.Duration(float64(time.Second) / opts.Rate))
	}

	return s
}

// schedule places the next blink after the given offset.
func (s *Simulator) schedule(after float64) {
	gap := s.opts.BlinkInterval.Seconds() * (0.5 + s.rng.Float64())
	length := s.opts.BlinkLength.Seconds() * (0.75 + 0.5*s.rng.Float64())

	s.nextBlink = after + gap
	s.blinkEnd = s.nextBlink + length
}

func (s *Simulator) ratioAt(offset float64) float64 {
	if offset >= s.blinkEnd {
		s.schedule(offset)
	}

	base := openRatio
	if offset >= s.nextBlink && offset < s.blinkEnd {
		base = closedRatio
	}

	return math.Max(0, base+s.rng.NormFloat64()*noise)
}

func (s *Simulator) Next(ctx context.Context) (Sample, error) {
	offset := float64(s.frame) / s.opts.Rate

	if s.opts.Duration > 0 && offset >= s.opts.Duration.Seconds() {
		return Sample{}, io.EOF
	}

	if s.ticker != nil {
		select {
		case <-ctx.Done():
			return Sample{}, ctx.Err()
		case <-s.ticker.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	s.frame++

	var sample Sample

	if !s.opts.Realtime {
		sample.Time = s.opts.Start + offset
		sample.Stamped = true
	}

	ratio := s.ratioAt(offset)

	if s.rng.Float64() >= s.opts.NoSignal {
		sample.Ratio = &ratio
	}

	return sample, nil
}

func (s *Simulator) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
	}

	return nil
}
