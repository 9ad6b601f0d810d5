package source

import "github.com/ayoisaiah/eyestrain/internal/apperr"

// ErrUnknownFormat is returned for an unsupported input format.
var ErrUnknownFormat = &apperr.Error{
	Message: "unknown input format %q: expected csv, jsonl or cbor",
}

var (
	errOpenInput = &apperr.Error{
		Message: "unable to open input %s",
	}

	errReadInput = &apperr.Error{
		Message: "unable to read input",
	}

	errMalformedRecord = &apperr.Error{
		Message: "malformed record %d",
	}

	errInvalidRatio = &apperr.Error{
		Message: "invalid openness ratio %v",
	}

	errInvalidTime = &apperr.Error{
		Message: "invalid timestamp %v",
	}

	errEyeShape = &apperr.Error{
		Message: "eye contour needs 6 points, got %d and %d",
	}

	errShortMesh = &apperr.Error{
		Message: "face mesh has %d points, too few to locate both eyes",
	}

	errFieldCount = &apperr.Error{
		Message: "expected timestamp,ratio but got %d fields",
	}
)
