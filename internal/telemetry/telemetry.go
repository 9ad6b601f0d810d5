// Package telemetry exports live eye-strain metrics for Prometheus
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ayoisaiah/eyestrain/internal/session"
	"github.com/ayoisaiah/eyestrain/internal/strain"
)

var levels = []strain.Level{strain.Low, strain.Mild, strain.Moderate, strain.High}

// Exporter holds the collectors of one session on a private registry.
type Exporter struct {
	registry *prometheus.Registry

	blinksPerMinute  prometheus.Gauge
	perclos          prometheus.Gauge
	avgOpenness      prometheus.Gauge
	avgBlinkDuration prometheus.Gauge
	blinksInWindow   prometheus.Gauge
	level            *prometheus.GaugeVec

	frames        prometheus.Counter
	framesNoFace  prometheus.Counter
	blinks        prometheus.Counter
	blinkDuration prometheus.Histogram
}

// NewExporter creates and registers the collectors.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),

		blinksPerMinute: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eyestrain_blinks_per_minute",
			Help: "Blink rate over the rolling window",
		}),
		perclos: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eyestrain_perclos_percent",
			Help: "Percentage of frames in the rolling window with the eyes closed",
		}),
		avgOpenness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eyestrain_avg_openness_ratio",
			Help: "Mean eye openness ratio over the rolling window",
		}),
		avgBlinkDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eyestrain_avg_blink_duration_ms",
			Help: "Mean blink duration over the rolling window in milliseconds",
		}),
		blinksInWindow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eyestrain_blinks_in_window",
			Help: "Number of blinks in the rolling window",
		}),
		level: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "eyestrain_strain_level",
				Help: "Current strain level; the active level is 1, the others 0",
			},
			[]string{"level"},
		),

		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eyestrain_frames_total",
			Help: "Total frames with a face processed",
		}),
		framesNoFace: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eyestrain_frames_no_signal_total",
			Help: "Total frames skipped because no face was found",
		}),
		blinks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eyestrain_blinks_total",
			Help: "Total blinks detected",
		}),
		blinkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eyestrain_blink_duration_seconds",
			Help:    "Blink duration in seconds",
			Buckets: []float64{.05, .1, .15, .2, .3, .4, .5, .75, 1, 2},
		}),
	}

	e.registry.MustRegister(
		e.blinksPerMinute,
		e.perclos,
		e.avgOpenness,
		e.avgBlinkDuration,
		e.blinksInWindow,
		e.level,
		e.frames,
		e.framesNoFace,
		e.blinks,
		e.blinkDuration,
	)

	return e
}

// Registry returns the registry the collectors live on.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe records the result of a processed frame.
func (e *Exporter) Observe(res *session.Result) {
	e.frames.Inc()

	if res.Blink != nil {
		e.blinks.Inc()
		e.blinkDuration.Observe(res.Blink.DurationMs / 1000)
	}

	e.Refresh(res)
}

// Refresh updates the gauges without counting a frame. It is used for
// clock ticks.
func (e *Exporter) Refresh(res *session.Result) {
	m := res.Metrics

	e.blinksPerMinute.Set(m.BlinksPerMinute)
	e.perclos.Set(m.Perclos)
	e.avgOpenness.Set(m.AvgOpenness)
	e.avgBlinkDuration.Set(m.AvgBlinkDurationMs)
	e.blinksInWindow.Set(float64(m.BlinksInWindow))

	for _, l := range levels {
		var v float64
		if l == res.Level {
			v = 1
		}

		e.level.WithLabelValues(l.String()).Set(v)
	}
}

// NoSignal counts a frame without a face.
func (e *Exporter) NoSignal() {
	e.framesNoFace.Inc()
}
