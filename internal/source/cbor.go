package source

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// cborDecoder reads a CBOR sequence of records. Items of the wrong shape
// are skipped; a broken byte stream ends the input.
type cborDecoder struct {
	dec   *cbor.Decoder
	items int
}

func newCBORDecoder(r io.Reader) *cborDecoder {
	return &cborDecoder{dec: cbor.NewDecoder(r)}
}

func (d *cborDecoder) next() (Sample, error) {
	var rec Record

	err := d.dec.Decode(&rec)
	if errors.Is(err, io.EOF) {
		return Sample{}, io.EOF
	}

	d.items++

	if err != nil {
		var typeErr *cbor.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Sample{}, errMalformedRecord.Fmt(d.items).Wrap(err)
		}

		return Sample{}, errReadInput.Wrap(err)
	}

	s, err := rec.Sample()
	if err != nil {
		return Sample{}, errMalformedRecord.Fmt(d.items).Wrap(err)
	}

	return s, nil
}
