// Package source reads the per-frame openness signal produced by an
// external face landmark detector
package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Sample is one frame of the input signal. Ratio is nil when the detector
// found no face. Time is only meaningful when Stamped is set.
type Sample struct {
	Ratio   *float64
	Time    float64
	Stamped bool
}

// Source yields samples one at a time. Next returns io.EOF once the input
// is exhausted.
type Source interface {
	Next(ctx context.Context) (Sample, error)
	Close() error
}

// Format identifies an input encoding.
type Format string

const (
	CSV   Format = "csv"
	JSONL Format = "jsonl"
	CBOR  Format = "cbor"
)

// Formats lists the supported input encodings.
var Formats = []Format{CSV, JSONL, CBOR}

// ParseFormat validates a format name. An empty name is returned as is.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return f, nil
	}

	for _, v := range Formats {
		if v == f {
			return f, nil
		}
	}

	return "", ErrUnknownFormat.Fmt(s)
}

// FormatFromPath guesses the format from a file extension, defaulting to
// CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson", ".json":
		return JSONL
	case ".cbor":
		return CBOR
	default:
		return CSV
	}
}

// Open opens the input at path ("-" or "" for stdin). When format is
// empty it is derived from the file extension.
func Open(path string, format Format) (Source, error) {
	if format == "" {
		format = FormatFromPath(path)
	}

	var r io.Reader

	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errOpenInput.Fmt(path).Wrap(err)
		}

		r = f
	}

	src, err := New(r, format)
	if err != nil {
		if c, ok := r.(io.Closer); ok && r != os.Stdin {
			_ = c.Close()
		}

		return nil, err
	}

	slog.Info("input opened",
		slog.String("path", path),
		slog.String("format", string(format)),
	)

	return src, nil
}

// New decodes samples from r. If r is an io.Closer other than stdin, it
// is closed with the Source.
func New(r io.Reader, format Format) (Source, error) {
	s := &stream{format: format}

	if c, ok := r.(io.Closer); ok && r != os.Stdin {
		s.closer = c
	}

	switch format {
	case CSV:
		s.next = newCSVDecoder(r).next
	case JSONL:
		s.next = newJSONLDecoder(r).next
	case CBOR:
		s.next = newCBORDecoder(r).next
	default:
		return nil, ErrUnknownFormat.Fmt(format)
	}

	return s, nil
}

// stream adapts a decoder to Source. Malformed records are logged and
// skipped.
type stream struct {
	closer  io.Closer
	next    func() (Sample, error)
	format  Format
	skipped int
}

func (s *stream) Next(ctx context.Context) (Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Sample{}, err
		}

		sample, err := s.next()
		if err == nil {
			return sample, nil
		}

		if !errors.Is(err, errMalformedRecord) {
			return Sample{}, err
		}

		s.skipped++

		slog.Warn("skipping malformed record",
			slog.String("format", string(s.format)),
			slog.Any("error", err),
		)
	}
}

// Skipped returns the number of malformed records dropped so far.
func (s *stream) Skipped() int {
	return s.skipped
}

func (s *stream) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func validRatio(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func validTime(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
