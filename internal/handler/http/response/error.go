package response

import (
	"errors"
	"net/http"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, attendance.ErrSessionExpired):
		SessionExpired(w)
	case errors.Is(err, attendance.ErrFetchFailed):
		BadGateway(w, "FETCH_FAILED", "Could not fetch attendance data from the source system")
	case errors.Is(err, holiday.ErrFetchFailed):
		BadGateway(w, "FETCH_FAILED", "Could not fetch the holiday calendar")
	case errors.Is(err, attendance.ErrNoReportData):
		NotFound(w, "NO_REPORT_DATA", "No completed work this month to report on")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
