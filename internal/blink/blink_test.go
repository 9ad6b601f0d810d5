package blink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/eyestrain/internal/models"
)

func feed(d *Detector, ratios []float64, step float64) []models.Blink {
	var blinks []models.Blink

	for i, r := range ratios {
		if b, ok := d.Observe(float64(i)*step, r); ok {
			blinks = append(blinks, b)
		}
	}

	return blinks
}

func repeat(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}

	return s
}

func TestSingleBlink(t *testing.T) {
	d := NewDetector(0.25)

	var ratios []float64
	ratios = append(ratios, repeat(0.4, 5)...)
	ratios = append(ratios, repeat(0.1, 6)...)
	ratios = append(ratios, repeat(0.4, 5)...)

	blinks := feed(d, ratios, 0.1)

	require.Len(t, blinks, 1)
	assert.InDelta(t, 0.5, blinks[0].Start, 1e-9)
	assert.InDelta(t, 1.1, blinks[0].End, 1e-9)
	assert.InDelta(t, 600, blinks[0].DurationMs, 1e-6)
	assert.Equal(t, 1, d.Total())
	assert.Equal(t, Open{}, d.State())
}

func TestNoBlinkAboveThreshold(t *testing.T) {
	d := NewDetector(0.25)

	blinks := feed(d, repeat(0.4, 30), 1.0/30)

	assert.Empty(t, blinks)
	assert.Zero(t, d.Total())
}

func TestNoEventWhileClosed(t *testing.T) {
	d := NewDetector(0.25)

	blinks := feed(d, append(repeat(0.4, 2), repeat(0.1, 10)...), 0.1)

	assert.Empty(t, blinks)

	since, ok := d.Pending()
	assert.True(t, ok)
	assert.InDelta(t, 0.2, since, 1e-9)
	assert.Equal(t, Closed{Since: since}, d.State())
}

func TestThresholdIsInclusiveForOpen(t *testing.T) {
	d := NewDetector(0.25)

	_, ok := d.Observe(0, 0.25)
	assert.False(t, ok)
	assert.Equal(t, Open{}, d.State())

	d.Observe(1, 0.2)

	b, ok := d.Observe(2, 0.25)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, b.DurationMs)
}

func TestDurationNeverNegative(t *testing.T) {
	d := NewDetector(0.25)

	d.Observe(5, 0.1)

	b, ok := d.Observe(4, 0.3)
	require.True(t, ok)
	assert.GreaterOrEqual(t, b.DurationMs, 0.0)
	assert.Equal(t, b.Start, b.End)
}

func TestManyBlinks(t *testing.T) {
	d := NewDetector(0.2)

	var ratios []float64
	for range 12 {
		ratios = append(ratios, repeat(0.35, 20)...)
		ratios = append(ratios, repeat(0.05, 4)...)
	}

	ratios = append(ratios, 0.35)

	blinks := feed(d, ratios, 0.05)

	assert.Len(t, blinks, 12)
	assert.Equal(t, 12, d.Total())

	for _, b := range blinks {
		assert.False(t, math.IsNaN(b.DurationMs))
		assert.InDelta(t, 200, b.DurationMs, 1e-6)
	}
}
