// Package openness reduces eye-contour landmarks to a single openness ratio
// (the eye aspect ratio)
package openness

import "math"

// Point is a 2-D landmark coordinate.
type Point struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
}

// Eye holds six contour points in a fixed order: left corner, upper outer,
// upper inner, right corner, lower inner, lower outer.
type Eye [6]Point

// Face mesh indices of the six contour points of each eye.
var (
	LeftEyeMesh  = [6]int{33, 160, 158, 133, 153, 144}
	RightEyeMesh = [6]int{362, 385, 387, 263, 373, 380}
)

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Ratio returns the vertical to horizontal distance ratio of the eye.
// Degenerate geometry (zero width) yields 0.
func Ratio(e Eye) float64 {
	vertical := distance(e[1], e[5])
	horizontal := distance(e[0], e[3])

	if horizontal == 0 {
		return 0
	}

	return vertical / horizontal
}

// Mean returns the average ratio of both eyes.
func Mean(left, right Eye) float64 {
	return (Ratio(left) + Ratio(right)) / 2
}

// FromMesh extracts both eyes from a face mesh and returns their mean
// ratio. It reports false when the mesh has too few points.
func FromMesh(landmarks []Point) (float64, bool) {
	left, ok := pick(landmarks, LeftEyeMesh)
	if !ok {
		return 0, false
	}

	right, ok := pick(landmarks, RightEyeMesh)
	if !ok {
		return 0, false
	}

	return Mean(left, right), true
}

// EyeFrom converts a slice of exactly six points to an Eye.
func EyeFrom(points []Point) (Eye, bool) {
	var e Eye

	if len(points) != len(e) {
		return e, false
	}

	copy(e[:], points)

	return e, true
}

func pick(landmarks []Point, indices [6]int) (Eye, bool) {
	var e Eye

	for i, idx := range indices {
		if idx >= len(landmarks) {
			return e, false
		}

		e[i] = landmarks[idx]
	}

	return e, true
}
