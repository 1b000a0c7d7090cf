package attendance

import "errors"

// Attendance domain errors
var (
	// Input errors
	ErrInvalidTimeFormat    = errors.New("invalid time format, expected HH:MM")
	ErrInvalidReferenceDate = errors.New("invalid reference date")
	ErrUnknownSummaryMode   = errors.New("unknown summary mode")

	// Source errors
	ErrSourceUnavailable = errors.New("attendance source unavailable")
)
