package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance analytics. All
// read operations share one cached monthly snapshot; concurrent callers
// never trigger more than one underlying fetch.
type AttendanceService interface {
	// GetTodayStatus returns today's punch state plus the month-to-date
	// pacing summary.
	GetTodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// GetMissedPunches lists incomplete punches for workdays strictly
	// before today, ascending by date.
	GetMissedPunches(ctx context.Context) (MissedPunchListResponse, error)

	// GetWorkdayVerdict classifies a date as workday or holiday. The zero
	// time means today.
	GetWorkdayVerdict(ctx context.Context, date time.Time) (WorkdayVerdictResponse, error)

	// GetOvertimeReport returns the full overtime analysis, or
	// ErrNoReportData when there is nothing meaningful to report yet.
	GetOvertimeReport(ctx context.Context) (OvertimeReport, error)

	// InvalidateCache forces the next read to re-fetch. Called after a
	// successful punch action. Idempotent.
	InvalidateCache(ctx context.Context)
}
