package report

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ayoisaiah/eyestrain/internal/osutil"
	"github.com/ayoisaiah/eyestrain/internal/timeutil"
)

// BucketHeader is the header row of the bucketed table.
var BucketHeader = []string{
	"minute_index",
	"start_iso",
	"frames",
	"blinks_in_min",
	"blinks_per_min",
	"perclos",
	"avg_blink_ms",
}

// Files lists the report files that were written.
type Files struct {
	Summary string `json:"summary,omitempty"`
	Buckets string `json:"buckets,omitempty"`
}

// Paths returns the non-empty file paths.
func (f Files) Paths() []string {
	var paths []string

	for _, p := range []string{f.Summary, f.Buckets} {
		if p != "" {
			paths = append(paths, p)
		}
	}

	return paths
}

// Writer writes reports to a directory. Timestamps are rendered in
// Location (local time when nil).
type Writer struct {
	Location *time.Location
	Dir      string
}

// Names returns the summary and bucket file paths for a session.
func (w *Writer) Names(s *Summary) (summary, buckets string) {
	stamp := timeutil.FileStamp(s.StartTime(w.Location))
	base := filepath.Join(w.Dir, "session_"+stamp)

	return base + ".txt", base + ".csv"
}

// Write writes the summary and the bucketed table. Each file is attempted
// even if the other fails; the returned Files only lists files that were
// written completely.
func (w *Writer) Write(r *Report) (Files, error) {
	var files Files

	if err := os.MkdirAll(w.Dir, osutil.DirPermission); err != nil {
		return files, errCreateReportDir.Fmt(w.Dir).Wrap(err)
	}

	summaryPath, bucketsPath := w.Names(&r.Summary)

	summaryErr := writeFile(summaryPath, func(out io.Writer) error {
		return WriteSummary(out, &r.Summary, w.Location)
	})
	if summaryErr == nil {
		files.Summary = summaryPath
	}

	bucketsErr := writeFile(bucketsPath, func(out io.Writer) error {
		return WriteBuckets(out, r.Buckets, w.Location)
	})
	if bucketsErr == nil {
		files.Buckets = bucketsPath
	}

	return files, errors.Join(summaryErr, bucketsErr)
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errWriteReport.Fmt(path).Wrap(err)
	}

	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = errWriteReport.Fmt(path).Wrap(cerr)
		}
	}()

	writer := bufio.NewWriter(f)

	if err = fn(writer); err != nil {
		return errWriteReport.Fmt(path).Wrap(err)
	}

	if err = writer.Flush(); err != nil {
		return errWriteReport.Fmt(path).Wrap(err)
	}

	return nil
}

// WriteSummary writes the plain text summary.
func WriteSummary(out io.Writer, s *Summary, loc *time.Location) error {
	_, err := fmt.Fprintf(out,
		"Eye Strain Session Report\n"+
			"Start: %s\n"+
			"End: %s\n"+
			"Duration (s): %.1f\n\n"+
			"Total frames: %d\n"+
			"Total blinks: %d\n"+
			"Blinks/min: %.2f\n"+
			"Avg blink duration (ms): %.1f\n"+
			"PERCLOS (%%): %.2f\n"+
			"Avg EAR: %.4f\n"+
			"Final strain level: %s\n",
		timeutil.ISO(s.StartTime(loc)),
		timeutil.ISO(s.EndTime(loc)),
		s.DurationSeconds,
		s.TotalFrames,
		s.TotalBlinks,
		s.BlinksPerMinute,
		s.AvgBlinkDurationMs,
		s.Perclos,
		s.AvgOpenness,
		s.Level,
	)

	return err
}

// WriteBuckets writes the bucketed table as CSV.
func WriteBuckets(out io.Writer, buckets []Bucket, loc *time.Location) error {
	w := csv.NewWriter(out)

	if err := w.Write(BucketHeader); err != nil {
		return err
	}

	for i := range buckets {
		if err := w.Write(bucketRow(&buckets[i], loc)); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func bucketRow(b *Bucket, loc *time.Location) []string {
	return []string{
		strconv.Itoa(b.Index),
		timeutil.ISO(timeutil.FromSeconds(b.Start, loc)),
		strconv.Itoa(b.Frames),
		strconv.Itoa(b.Blinks),
		fixed(b.BlinksPerMinute),
		fixed(b.Perclos),
		fixed(b.AvgBlinkDurationMs),
	}
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
