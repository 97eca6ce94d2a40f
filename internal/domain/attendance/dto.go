package attendance

// ========================================
// ATTENDANCE DTOs
// ========================================

// TodaySummary is the month-to-date pacing block shown next to today's
// punch state. Minute totals include today's open shift while working.
type TodaySummary struct {
	ScheduledHours string `json:"scheduled_hours"`
	TotalHours     string `json:"total_hours"`
	OverUnder      string `json:"over_under"`

	RemainingWorkdays int `json:"remaining_workdays"`
	CompletedDays     int `json:"completed_days"`

	// RequiredPerDay is the per-remaining-day pace needed to meet the
	// scheduled monthly hours; "達成" once the target is already met.
	RequiredPerDay string `json:"required_per_day"`

	// TargetClockOut is the projected clock-out time for today (clock-in +
	// required pace + break), only present while working.
	TargetClockOut *string `json:"target_clock_out,omitempty"`
}

type TodayStatusResponse struct {
	Date         string        `json:"date"`
	IsWorking    bool          `json:"is_working"`
	ClockInTime  *string       `json:"clock_in_time,omitempty"`
	ClockOutTime *string       `json:"clock_out_time,omitempty"`
	Summary      *TodaySummary `json:"summary,omitempty"`
}

type MissedPunchListResponse struct {
	Count int               `json:"count"`
	Items []MissedPunchItem `json:"items"`
}

type WorkdayVerdictResponse struct {
	Date        string  `json:"date"`
	IsWorkday   bool    `json:"is_workday"`
	Weekday     string  `json:"weekday"`
	HolidayName *string `json:"holiday_name,omitempty"`
}
