package attendance

import (
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
)

var weekdayLabels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayLabel returns the single-character Japanese weekday name.
func WeekdayLabel(date time.Time) string {
	return weekdayLabels[int(date.Weekday())]
}

// DetectMissedPunches lists incomplete punches for workdays strictly before
// today, ascending by date. Today and future dates are never candidates: a
// day in progress cannot have a missed punch yet.
func DetectMissedPunches(days map[int]attendance.DayRecord, year int, month time.Month, today time.Time, cal holiday.Calendar) []attendance.MissedPunchItem {
	items := make([]attendance.MissedPunchItem, 0)

	for day := 1; day < today.Day(); day++ {
		rec := days[day]
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if !ClassifyWorkday(rec, date, cal) {
			continue
		}

		var kind attendance.MissedPunchKind
		var label string
		switch {
		case rec.ClockIn == nil && rec.ClockOut == nil:
			kind, label = attendance.MissedBoth, "出退"
		case rec.ClockIn == nil:
			kind, label = attendance.MissedClockIn, "出"
		case rec.ClockOut == nil:
			kind, label = attendance.MissedClockOut, "退"
		default:
			continue
		}

		items = append(items, attendance.MissedPunchItem{
			Date:         date.Format(holiday.DateKey),
			WeekdayLabel: WeekdayLabel(date),
			Kind:         kind,
			Label:        label,
		})
	}

	return items
}
