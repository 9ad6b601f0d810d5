package session

import "github.com/ayoisaiah/eyestrain/internal/apperr"

// ErrSessionEnded is returned when a session is ended twice.
var ErrSessionEnded = &apperr.Error{
	Message: "session has already ended",
}
