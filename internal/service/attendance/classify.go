package attendance

import (
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
)

// ClassifyWorkday merges three holiday signals into one verdict. The source
// page's own row styling is the most reliable signal when a row exists,
// since it reflects the employer's actual calendar including substitute
// holidays; the weekday plus public-holiday check is the fallback. A date
// with no punch-entry row at all is treated as a holiday outright.
func ClassifyWorkday(rec attendance.DayRecord, date time.Time, cal holiday.Calendar) bool {
	if !rec.HasEntry {
		return false
	}
	if rec.SourceIsHoliday {
		return false
	}
	if cal.IsHoliday(date) {
		return false
	}
	return true
}
