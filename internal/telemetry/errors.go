package telemetry

import "github.com/ayoisaiah/eyestrain/internal/apperr"

var errListen = &apperr.Error{
	Message: "unable to serve metrics on %s",
}
