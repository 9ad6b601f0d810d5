// Package strain classifies eye-strain metrics into severity levels
package strain

import (
	"fmt"
	"strings"

	"github.com/ayoisaiah/eyestrain/internal/models"
)

// Level is an eye-strain severity level. Higher values are more severe.
type Level int

const (
	Low Level = iota
	Mild
	Moderate
	High
)

var levelNames = map[Level]string{
	Low:      "Low",
	Mild:     "Mild",
	Moderate: "Moderate",
	High:     "High",
}

var accents = map[Level]string{
	Low:      "#00FF00",
	Mild:     "#FFFF00",
	Moderate: "#FFA500",
	High:     "#FF0000",
}

var advice = map[Level]string{
	Low:      "Your eyes are healthy. Keep up good habits!",
	Mild:     "Some eye strain detected. Take breaks every 20 minutes.",
	Moderate: "Moderate strain. Follow the 20-20-20 rule: every 20 min, look 20 ft away for 20 sec.",
	High:     "High eye strain! Take a break now. Rest your eyes and follow the 20-20-20 rule.",
}

// Recommendations are shown while the level is High.
var Recommendations = []string{
	"High eye strain detected!",
	"Recommendation: Follow 20-20-20 (look 20 ft away for 20 s every 20 min)",
	"Or take a 5-minute break from screens",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("Level(%d)", int(l))
}

// Severity returns the ordinal severity of the level, starting at 0.
func (l Level) Severity() int {
	return int(l)
}

// Accent returns the hex colour used to display the level.
func (l Level) Accent() string {
	return accents[l]
}

// Advice returns a short recommendation for the level.
func (l Level) Advice() string {
	return advice[l]
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	lvl, err := Parse(string(b))
	if err != nil {
		return err
	}

	*l = lvl

	return nil
}

// Parse converts a level name to a Level. Matching is case-insensitive.
func Parse(s string) (Level, error) {
	for lvl, name := range levelNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return lvl, nil
		}
	}

	return 0, errUnknownLevel.Fmt(s)
}

type rule struct {
	match func(m models.Metrics) bool
	level Level
}

// rules are evaluated top to bottom and the first match wins, so the
// overlapping Mild ranges shadow High.
var rules = []rule{
	{
		level: Low,
		match: func(m models.Metrics) bool {
			return m.BlinksPerMinute >= 12 &&
				m.Perclos < 10 &&
				m.AvgBlinkDurationMs < 300
		},
	},
	{
		level: Mild,
		match: func(m models.Metrics) bool {
			return between(m.BlinksPerMinute, 8, 12) ||
				between(m.Perclos, 10, 20) ||
				between(m.AvgBlinkDurationMs, 300, 400)
		},
	},
	{
		level: High,
		match: func(m models.Metrics) bool {
			return m.BlinksPerMinute < 8 ||
				m.Perclos >= 20 ||
				m.AvgBlinkDurationMs >= 400
		},
	},
}

// between reports whether lo <= v < hi.
func between(v, lo, hi float64) bool {
	return v >= lo && v < hi
}

// Classify maps metrics to a strain level. Metrics that match no rule,
// which only happens with NaN inputs, are Moderate.
func Classify(m models.Metrics) Level {
	for _, r := range rules {
		if r.match(m) {
			return r.level
		}
	}

	return Moderate
}
