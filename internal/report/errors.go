package report

import "github.com/ayoisaiah/eyestrain/internal/apperr"

var (
	errCreateReportDir = &apperr.Error{
		Message: "unable to create report directory %s",
	}

	errWriteReport = &apperr.Error{
		Message: "unable to write report %s",
	}
)
