// Package timeutil converts between float second timestamps and time.Time
// values and formats them for reports.
package timeutil

import (
	"math"
	"time"
)

const (
	// FileStampLayout names report files after the session start.
	FileStampLayout = "20060102_150405"

	isoLayout         = "2006-01-02T15:04:05"
	isoFractionLayout = "2006-01-02T15:04:05.000000"
)

// Now returns the current wall-clock time in seconds since the Unix epoch.
func Now() float64 {
	return ToSeconds(time.Now())
}

// ToSeconds converts a time value to seconds since the Unix epoch.
func ToSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// FromSeconds converts seconds since the Unix epoch to a time value in loc,
// rounded to the nearest microsecond.
func FromSeconds(s float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	sec, frac := math.Modf(s)
	micros := math.Round(frac * 1e6)

	t := time.Unix(int64(sec), int64(micros)*int64(time.Microsecond))

	return t.In(loc)
}

// ISO formats t as YYYY-MM-DDTHH:MM:SS, with a six digit fraction only
// when the microsecond part is non-zero.
func ISO(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(isoLayout)
	}

	return t.Format(isoFractionLayout)
}

// FileStamp formats t for use in report file names.
func FileStamp(t time.Time) string {
	return t.Format(FileStampLayout)
}

// Round rounds a value to the nearest integer.
func Round(v float64) int {
	return int(math.Round(v))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val float64) (mins, secs int) {
	total := Round(val)

	return total / 60, total % 60
}
