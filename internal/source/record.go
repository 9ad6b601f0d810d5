package source

import "github.com/ayoisaiah/eyestrain/internal/openness"

// Record is one JSONL or CBOR input record. Exactly one of Ratio, the
// Left/Right contours or Landmarks is expected; the first one present in
// that order is used. Points are [x, y] pairs.
type Record struct {
	T         *float64     `json:"t,omitempty"         cbor:"t,omitempty"`
	Ratio     *float64     `json:"ratio,omitempty"     cbor:"ratio,omitempty"`
	Face      *bool        `json:"face,omitempty"      cbor:"face,omitempty"`
	Left      [][2]float64 `json:"left,omitempty"      cbor:"left,omitempty"`
	Right     [][2]float64 `json:"right,omitempty"     cbor:"right,omitempty"`
	Landmarks [][2]float64 `json:"landmarks,omitempty" cbor:"landmarks,omitempty"`
}

// Sample resolves the record to a sample. A record with no signal fields,
// or with face set to false, yields a sample without a ratio.
func (r *Record) Sample() (Sample, error) {
	var s Sample

	if r.T != nil {
		if !validTime(*r.T) {
			return s, errInvalidTime.Fmt(*r.T)
		}

		s.Time = *r.T
		s.Stamped = true
	}

	if r.Face != nil && !*r.Face {
		return s, nil
	}

	switch {
	case r.Ratio != nil:
		if !validRatio(*r.Ratio) {
			return s, errInvalidRatio.Fmt(*r.Ratio)
		}

		v := *r.Ratio
		s.Ratio = &v
	case r.Left != nil || r.Right != nil:
		left, okLeft := openness.EyeFrom(points(r.Left))
		right, okRight := openness.EyeFrom(points(r.Right))

		if !okLeft || !okRight {
			return s, errEyeShape.Fmt(len(r.Left), len(r.Right))
		}

		v := openness.Mean(left, right)
		s.Ratio = &v
	case r.Landmarks != nil:
		v, ok := openness.FromMesh(points(r.Landmarks))
		if !ok {
			return s, errShortMesh.Fmt(len(r.Landmarks))
		}

		s.Ratio = &v
	}

	return s, nil
}

func points(pairs [][2]float64) []openness.Point {
	if pairs == nil {
		return nil
	}

	out := make([]openness.Point, len(pairs))
	for i, p := range pairs {
		out[i] = openness.Point{X: p[0], Y: p[1]}
	}

	return out
}
