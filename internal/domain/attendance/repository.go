package attendance

import "context"

// RawDayRecord is one calendar cell as extracted by the scrape agent, time
// texts untouched ("9:00", "--:--", "").
type RawDayRecord struct {
	Date            string `json:"date"`
	ClockInText     string `json:"clock_in_text"`
	ClockOutText    string `json:"clock_out_text"`
	SourceIsHoliday bool   `json:"source_is_holiday"`
}

// RawMonthSnapshot is the scrape agent's full extraction for the current
// month: per-day rows plus the summary table texts.
type RawMonthSnapshot struct {
	Days []RawDayRecord `json:"days"`

	ScheduledHoursText string `json:"scheduled_hours_text"`
	TotalHoursText     string `json:"total_hours_text"`
	ScheduledDays      int    `json:"scheduled_days"`
	ActualDays         int    `json:"actual_days"`
}

// SnapshotFetcher is the scrape delegate boundary. The delegate bounds its
// own duration; no additional timeout is imposed on top of it. Failures are
// reported as ErrSessionExpired or ErrFetchFailed.
type SnapshotFetcher interface {
	FetchMonthSnapshot(ctx context.Context) (RawMonthSnapshot, error)
}
