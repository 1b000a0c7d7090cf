package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Malformed data in the attendance source, the message names the day
	case errors.Is(err, attendance.ErrInvalidTimeFormat):
		InvalidTimeFormat(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidReferenceDate):
		BadRequest(w, "Invalid reference date", nil)
	case errors.Is(err, attendance.ErrUnknownSummaryMode):
		BadRequest(w, "Unknown summary mode", nil)

	case errors.Is(err, attendance.ErrSourceUnavailable):
		slog.Error("Attendance source unavailable", "error", err)
		ServiceUnavailable(w, "Attendance data is temporarily unavailable")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
