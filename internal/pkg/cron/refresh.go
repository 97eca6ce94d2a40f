package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
)

// RefreshJobs keeps the snapshot and holiday caches warm so clients
// connecting over SSE see updates without polling the agent themselves.
type RefreshJobs struct {
	attendanceSvc attendance.AttendanceService
	holidaySvc    holiday.Service

	snapshotInterval time.Duration
	holidayInterval  time.Duration
}

func NewRefreshJobs(
	attendanceSvc attendance.AttendanceService,
	holidaySvc holiday.Service,
	snapshotInterval time.Duration,
	holidayInterval time.Duration,
) *RefreshJobs {
	return &RefreshJobs{
		attendanceSvc:    attendanceSvc,
		holidaySvc:       holidaySvc,
		snapshotInterval: snapshotInterval,
		holidayInterval:  holidayInterval,
	}
}

func (j *RefreshJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_snapshot", j.snapshotInterval, j.RefreshSnapshot)
	scheduler.AddJob("refresh_holiday_calendar", j.holidayInterval, j.RefreshHolidayCalendar)
}

// RefreshSnapshot pulls today's status, which refetches the monthly snapshot
// once the cache entry has gone stale. A missing browser session is expected
// when nobody is logged in, so it is logged at debug level and not treated
// as a failure.
func (j *RefreshJobs) RefreshSnapshot(ctx context.Context) error {
	_, err := j.attendanceSvc.GetTodayStatus(ctx)
	if errors.Is(err, attendance.ErrSessionExpired) {
		slog.Debug("Cron: snapshot refresh skipped, no active session")
		return nil
	}
	return err
}

func (j *RefreshJobs) RefreshHolidayCalendar(ctx context.Context) error {
	// Calendar never fails the caller; a lookup failure is logged inside
	// and the stale mapping keeps serving.
	j.holidaySvc.Calendar(ctx)
	return nil
}
