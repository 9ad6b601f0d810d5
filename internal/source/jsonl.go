package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
)

// maxLineSize fits a full 478 point face mesh with room to spare.
const maxLineSize = 1 << 20

type jsonlDecoder struct {
	sc   *bufio.Scanner
	line int
}

func newJSONLDecoder(r io.Reader) *jsonlDecoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &jsonlDecoder{sc: sc}
}

func (d *jsonlDecoder) next() (Sample, error) {
	for d.sc.Scan() {
		d.line++

		b := bytes.TrimSpace(d.sc.Bytes())
		if len(b) == 0 {
			continue
		}

		var rec Record

		if err := json.Unmarshal(b, &rec); err != nil {
			return Sample{}, errMalformedRecord.Fmt(d.line).Wrap(err)
		}

		s, err := rec.Sample()
		if err != nil {
			return Sample{}, errMalformedRecord.Fmt(d.line).Wrap(err)
		}

		return s, nil
	}

	if err := d.sc.Err(); err != nil {
		return Sample{}, errReadInput.Wrap(err)
	}

	return Sample{}, io.EOF
}
