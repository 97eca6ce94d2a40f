package http

import (
	"net/http"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMissedPunches(w http.ResponseWriter, r *http.Request)
	GetOvertime(w http.ResponseWriter, r *http.Request)
	GetWorkdayVerdict(w http.ResponseWriter, r *http.Request)
	InvalidateCache(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.GetTodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// GetMissedPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMissedPunches(w http.ResponseWriter, r *http.Request) {
	list, err := h.attendanceService.GetMissedPunches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// GetOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetOvertime(w http.ResponseWriter, r *http.Request) {
	report, err := h.attendanceService.GetOvertimeReport(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// GetWorkdayVerdict implements AttendanceHandler. The optional ?date=
// parameter defaults to today.
func (h *attendanceHandlerImpl) GetWorkdayVerdict(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); !validator.IsEmpty(raw) {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{
				{Field: "date", Message: "must be a YYYY-MM-DD date"},
			})
			return
		}
		date = parsed
	}

	verdict, err := h.attendanceService.GetWorkdayVerdict(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, verdict)
}

// InvalidateCache implements AttendanceHandler. Callers hit this after a
// successful punch so the next read re-fetches instead of serving stale data.
func (h *attendanceHandlerImpl) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.attendanceService.InvalidateCache(r.Context())
	response.SuccessWithMessage(w, "Snapshot cache invalidated", nil)
}
