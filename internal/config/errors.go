package config

import "github.com/ayoisaiah/eyestrain/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errParseConfig = &apperr.Error{
		Message: "parsing config file failed",
	}

	errInvalidThreshold = &apperr.Error{
		Message: "%s threshold must be greater than 0 and at most 1, got %v",
	}

	errInvalidWindow = &apperr.Error{
		Message: "window duration must be between %v and %v, got %v",
	}

	errInvalidCooldown = &apperr.Error{
		Message: "recommendation cooldown cannot be negative, got %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level: %s",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %v",
	}

	errMissingReplayFile = &apperr.Error{
		Message: "a recorded input file is required",
	}

	errSimulateWithInput = &apperr.Error{
		Message: "--simulate cannot be combined with --input",
	}
)
