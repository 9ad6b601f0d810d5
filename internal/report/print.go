package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/timeutil"
	"github.com/ayoisaiah/eyestrain/internal/ui"
)

// Print renders the report for the terminal.
func Print(out io.Writer, r *Report, loc *time.Location) error {
	s := &r.Summary

	mins, secs := timeutil.SecsToMinsAndSecs(s.DurationSeconds)

	fmt.Fprintf(out, "%s (%dm %ds)\n",
		ui.Level(s.Level, s.Level.String()+" strain level"), mins, secs)
	fmt.Fprintf(out, "%s\n\n", s.Level.Advice())

	summary := [][]string{
		{"METRIC", "VALUE"},
		{"Start", timeutil.ISO(s.StartTime(loc))},
		{"End", timeutil.ISO(s.EndTime(loc))},
		{"Total frames", fmt.Sprintf("%d", s.TotalFrames)},
		{"Total blinks", fmt.Sprintf("%d", s.TotalBlinks)},
		{"Blinks/min", fmt.Sprintf("%.2f", s.BlinksPerMinute)},
		{"Avg blink (ms)", fmt.Sprintf("%.1f", s.AvgBlinkDurationMs)},
		{"PERCLOS (%)", fmt.Sprintf("%.2f", s.Perclos)},
		{"Avg EAR", fmt.Sprintf("%.4f", s.AvgOpenness)},
	}

	if err := ui.PrintTable(out, summary); err != nil {
		return err
	}

	table := make([][]string, 0, len(r.Buckets)+1)
	table = append(table, []string{
		"#", "START", "FRAMES", "BLINKS", "PERCLOS (%)", "AVG BLINK (ms)",
	})

	for i := range r.Buckets {
		b := &r.Buckets[i]

		table = append(table, []string{
			fmt.Sprintf("%d", b.Index),
			timeutil.FromSeconds(b.Start, loc).Format(time.TimeOnly),
			fmt.Sprintf("%d", b.Frames),
			fmt.Sprintf("%d", b.Blinks),
			fmt.Sprintf("%.1f", b.Perclos),
			fmt.Sprintf("%.1f", b.AvgBlinkDurationMs),
		})
	}

	return ui.PrintTable(out, table)
}
