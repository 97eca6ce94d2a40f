package holiday

import "time"

// DateKey is the layout used for calendar map keys.
const DateKey = "2006-01-02"

// Calendar is a date to holiday-name mapping with its fetch timestamp.
// Replaced whole on every refresh, never edited in place.
type Calendar struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Days      map[string]string `json:"days"`
}

// IsHoliday reports a pure calendar judgment: weekends count, and so does
// any date named in the mapping. Scraped page state plays no part here.
func (c Calendar) IsHoliday(date time.Time) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return true
	}
	_, ok := c.Days[date.Format(DateKey)]
	return ok
}

// Name returns the holiday name for a date, if the mapping has one.
func (c Calendar) Name(date time.Time) string {
	return c.Days[date.Format(DateKey)]
}
