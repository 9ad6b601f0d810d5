package source

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

type csvDecoder struct {
	r       *csv.Reader
	records int
}

func newCSVDecoder(r io.Reader) *csvDecoder {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.ReuseRecord = true

	return &csvDecoder{r: cr}
}

// next reads a "timestamp,ratio" line. A single field is an unstamped
// ratio. A first line that does not parse is taken to be a header.
func (d *csvDecoder) next() (Sample, error) {
	for {
		fields, err := d.r.Read()
		if errors.Is(err, io.EOF) {
			return Sample{}, io.EOF
		}

		d.records++

		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return Sample{}, errMalformedRecord.Fmt(perr.Line).Wrap(err)
			}

			return Sample{}, errReadInput.Wrap(err)
		}

		sample, err := parseCSVFields(fields)
		if err != nil {
			if d.records == 1 {
				continue
			}

			line, _ := d.r.FieldPos(0)

			return Sample{}, errMalformedRecord.Fmt(line).Wrap(err)
		}

		return sample, nil
	}
}

func parseCSVFields(fields []string) (Sample, error) {
	var s Sample

	var ts, ratio string

	switch len(fields) {
	case 1:
		ratio = fields[0]
	case 2:
		ts, ratio = fields[0], fields[1]
	default:
		return s, errFieldCount.Fmt(len(fields))
	}

	ts = strings.TrimSpace(ts)
	ratio = strings.TrimSpace(ratio)

	if ts != "" {
		t, err := strconv.ParseFloat(ts, 64)
		if err != nil || !validTime(t) {
			return s, errInvalidTime.Fmt(ts)
		}

		s.Time = t
		s.Stamped = true
	}

	if ratio != "" {
		v, err := strconv.ParseFloat(ratio, 64)
		if err != nil || !validRatio(v) {
			return s, errInvalidRatio.Fmt(ratio)
		}

		s.Ratio = &v
	}

	return s, nil
}
