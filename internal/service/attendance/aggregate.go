package attendance

import (
	"log/slog"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/timeclock"
)

// Totals holds the derived monthly statistics. Each field is an independent
// pure reduction over the same day set; no day's classification affects
// another day's.
type Totals struct {
	CompletedDays             int
	TotalDailyOvertimeMinutes int
	RemainingWorkdays         int
}

// Aggregate computes the derived snapshot fields for the month containing
// today. A day counts as completed only when it lies strictly before today
// and both punches are present with a computable duration; today's entry is
// always excluded because its duration is not yet final. Days whose times
// do not yield a sane duration are skipped, not errored.
func Aggregate(days map[int]attendance.DayRecord, year int, month time.Month, today time.Time, cal holiday.Calendar) Totals {
	var totals Totals
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	for day := 1; day <= daysInMonth; day++ {
		rec := days[day]
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if day >= today.Day() {
			if ClassifyWorkday(rec, date, cal) {
				totals.RemainingWorkdays++
			}
			continue
		}

		if rec.ClockIn == nil || rec.ClockOut == nil {
			continue
		}
		worked, ok := timeclock.WorkedMinutes(*rec.ClockIn, *rec.ClockOut)
		if !ok {
			slog.Warn("skipping day with implausible punch times",
				"date", date.Format(holiday.DateKey),
				"clock_in", rec.ClockIn.String(), "clock_out", rec.ClockOut.String())
			continue
		}

		totals.CompletedDays++
		net := timeclock.NetWorkedMinutes(worked)
		if net > timeclock.StandardDayMinutes {
			totals.TotalDailyOvertimeMinutes += net - timeclock.StandardDayMinutes
		}
	}

	return totals
}
