package report

import (
	"time"

	"github.com/ayoisaiah/eyestrain/internal/timeutil"
)

// Document is the JSON form of a report. It keeps the epoch seconds and
// adds ISO-8601 times rendered in a fixed location.
type Document struct {
	Summary SummaryDocument  `json:"summary"`
	Buckets []BucketDocument `json:"minutes"`
}

// SummaryDocument is a Summary with ISO start and end times.
type SummaryDocument struct {
	StartISO string `json:"start_iso"`
	EndISO   string `json:"end_iso"`
	Summary
}

// BucketDocument is a Bucket with an ISO start time.
type BucketDocument struct {
	StartISO string `json:"start_iso"`
	Bucket
}

// Document renders the report for JSON output in loc.
func (r *Report) Document(loc *time.Location) Document {
	doc := Document{
		Summary: SummaryDocument{
			Summary:  r.Summary,
			StartISO: timeutil.ISO(r.Summary.StartTime(loc)),
			EndISO:   timeutil.ISO(r.Summary.EndTime(loc)),
		},
		Buckets: make([]BucketDocument, len(r.Buckets)),
	}

	for i, b := range r.Buckets {
		doc.Buckets[i] = BucketDocument{
			Bucket:   b,
			StartISO: timeutil.ISO(timeutil.FromSeconds(b.Start, loc)),
		}
	}

	return doc
}
