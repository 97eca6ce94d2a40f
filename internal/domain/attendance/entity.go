package attendance

import (
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/pkg/timeclock"
)

// DayRecord is one calendar date's scraped punch state. Records are created
// fresh on every snapshot fetch and never mutated in place.
type DayRecord struct {
	Day             int                  `json:"day"`
	ClockIn         *timeclock.TimeOfDay `json:"clock_in,omitempty"`
	ClockOut        *timeclock.TimeOfDay `json:"clock_out,omitempty"`
	SourceIsHoliday bool                 `json:"source_is_holiday"`

	// HasEntry reports whether the source page had a punch-entry row for
	// this date at all. Absence of a row is itself a non-workday signal.
	HasEntry bool `json:"has_entry"`
}

// IsCurrentlyWorking reports an open shift: clocked in, not yet out.
func (d DayRecord) IsCurrentlyWorking() bool {
	return d.ClockIn != nil && d.ClockOut == nil
}

// MonthlySnapshot is the unit cached by the single-flight cache: every day
// of the current month plus the source system's own summary figures.
type MonthlySnapshot struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`

	// Days keys exactly cover [1, daysInMonth]; future and absent days are
	// present with HasEntry=false.
	Days map[int]DayRecord `json:"days"`

	// As reported by the source system, not recomputed.
	ScheduledMinutes int  `json:"scheduled_minutes"`
	TotalMinutes     *int `json:"total_minutes,omitempty"`
	ScheduledDays    int  `json:"scheduled_days"`
	ActualDays       int  `json:"actual_days"`

	// Derived by the monthly aggregator.
	CompletedDays             int `json:"completed_days"`
	TotalDailyOvertimeMinutes int `json:"total_daily_overtime_minutes"`
	RemainingWorkdays         int `json:"remaining_workdays"`
}

// Date returns the calendar date for a day-of-month key.
func (s MonthlySnapshot) Date(day int) time.Time {
	return time.Date(s.Year, s.Month, day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the snapshot's month.
func (s MonthlySnapshot) DaysInMonth() int {
	return time.Date(s.Year, s.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Level grades an overtime metric.
type Level string

const (
	LevelSafe     Level = "safe"
	LevelCaution  Level = "caution"
	LevelWarning  Level = "warning"
	LevelDanger   Level = "danger"
	LevelNormal   Level = "normal"
	LevelExceeded Level = "exceeded"
)

// OvertimeLimitMinutes is the monthly legal overtime cap (45 hours).
const OvertimeLimitMinutes = 2700

// OvertimeReport is the full overtime analysis for the month so far. Pure
// function output, never persisted.
type OvertimeReport struct {
	AvgMinutesPerDay  int   `json:"avg_minutes_per_day"`
	AvgOvertimePerDay int   `json:"avg_overtime_per_day"`
	AvgOvertimeLevel  Level `json:"avg_overtime_level"`

	DailyExcessTotal int   `json:"daily_excess_total"`
	DailyExcessLevel Level `json:"daily_excess_level"`

	LegalOvertime      int   `json:"legal_overtime"`
	LegalOvertimeLevel Level `json:"legal_overtime_level"`
	LegalOvertimeHours int   `json:"legal_overtime_hours"`

	ForecastOvertime int   `json:"forecast_overtime"`
	ForecastLevel    Level `json:"forecast_level"`

	AlertText string `json:"alert_text,omitempty"`
	BadgeText string `json:"badge_text"`
}

// MissedPunchKind classifies an incomplete punch.
type MissedPunchKind string

const (
	MissedBoth     MissedPunchKind = "no-both"
	MissedClockIn  MissedPunchKind = "no-clock-in"
	MissedClockOut MissedPunchKind = "no-clock-out"
)

// MissedPunchItem is one incomplete-punch finding for a past workday.
type MissedPunchItem struct {
	Date         string          `json:"date"`
	WeekdayLabel string          `json:"day_of_week"`
	Kind         MissedPunchKind `json:"kind"`
	Label        string          `json:"label"`
}
