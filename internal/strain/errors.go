package strain

import "github.com/ayoisaiah/eyestrain/internal/apperr"

var errUnknownLevel = &apperr.Error{
	Message: "unknown strain level: %q",
}
