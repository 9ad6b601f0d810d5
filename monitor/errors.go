package monitor

import "github.com/ayoisaiah/eyestrain/internal/apperr"

var (
	errEmptyReplay = &apperr.Error{
		Message: "the input contained no timestamped samples",
	}

	errCloseSource = &apperr.Error{
		Message: "unable to close input",
	}

	errReadSource = &apperr.Error{
		Message: "reading input failed",
	}

	errParseReportCmd = &apperr.Error{
		Message: "unable to parse report_cmd option",
	}

	errRunReportCmd = &apperr.Error{
		Message: "report command failed",
	}

	errPrintReport = &apperr.Error{
		Message: "unable to print report",
	}
)
