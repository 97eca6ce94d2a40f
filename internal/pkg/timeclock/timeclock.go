package timeclock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// StandardDayMinutes is the 8-hour baseline a day is measured against.
	StandardDayMinutes = 480

	// BreakThresholdMinutes is the shift length at which the mandatory
	// unpaid break applies.
	BreakThresholdMinutes = 360

	// BreakMinutes is the length of the mandatory unpaid break.
	BreakMinutes = 60

	// DayMinutes is one calendar day in minutes.
	DayMinutes = 24 * 60
)

// TimeOfDay is a parsed "HH:MM" value. Hours may exceed 23 because the
// source system renders next-day times as 24:00+ (e.g. "26:00" for 02:00
// the following day). Negative marks signed durations such as "-1:30".
type TimeOfDay struct {
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	Negative bool `json:"negative,omitempty"`
}

var clockRegex = regexp.MustCompile(`^-?\d{1,2}:\d{2}$`)

// ParseClock parses "H:MM" / "HH:MM" with an optional leading minus sign.
// The empty string, the "--:--" placeholder the source page renders for
// missing punches, and anything outside the strict shape return ok=false.
// Callers must treat a failed parse as "no value", never as zero.
func ParseClock(s string) (TimeOfDay, bool) {
	if s == "" || s == "--:--" || !clockRegex.MatchString(s) {
		return TimeOfDay{}, false
	}

	negative := strings.HasPrefix(s, "-")
	parts := strings.SplitN(strings.TrimPrefix(s, "-"), ":", 2)

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, false
	}

	// The source renders up to "29:59" for overnight shifts.
	if hours > 29 || minutes > 59 {
		return TimeOfDay{}, false
	}

	return TimeOfDay{Hours: hours, Minutes: minutes, Negative: negative}, true
}

// TotalMinutes returns the signed minute count.
func (t TimeOfDay) TotalMinutes() int {
	total := t.Hours*60 + t.Minutes
	if t.Negative {
		return -total
	}
	return total
}

// String renders the value the way FormatMinutes does.
func (t TimeOfDay) String() string {
	return FormatMinutes(t.TotalMinutes())
}

// FormatMinutes renders a minute count as "H:MM" or "-H:MM". Hours are not
// zero-padded; minutes always are.
func FormatMinutes(total int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}

var durationRegex = regexp.MustCompile(`^-?\d{1,4}:\d{2}$`)

// ParseDurationText parses the summary-table totals the source system
// renders, such as "160:00" for a monthly figure. Hours are unbounded up to
// four digits; minutes must be two digits under 60.
func ParseDurationText(s string) (int, bool) {
	if s == "" || s == "--:--" || !durationRegex.MatchString(s) {
		return 0, false
	}

	negative := strings.HasPrefix(s, "-")
	parts := strings.SplitN(strings.TrimPrefix(s, "-"), ":", 2)

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes > 59 {
		return 0, false
	}

	total := hours*60 + minutes
	if negative {
		total = -total
	}
	return total, true
}

// WorkedMinutes computes clockOut-clockIn in minutes. A negative raw
// difference means the clock-out fell on the following calendar day, so one
// day is added. Results outside (0, 1440) are sensor errors: ok=false and
// the caller must discard the value.
func WorkedMinutes(clockIn, clockOut TimeOfDay) (int, bool) {
	diff := clockOut.TotalMinutes() - clockIn.TotalMinutes()
	if diff < 0 {
		diff += DayMinutes
	}
	if diff <= 0 || diff >= DayMinutes {
		return 0, false
	}
	return diff, true
}

// OpenWorkedMinutes computes elapsed minutes for a still-open shift, from
// the clock-in time to now. When the clock-in appears to lie in the future
// relative to now, the clock-in is anchored to the previous day: this is the
// "clocked in at 23:00 yesterday, it is 01:00 now" case. The same (0, 1440)
// validity window applies.
func OpenWorkedMinutes(clockIn TimeOfDay, now time.Time) (int, bool) {
	nowMinutes := now.Hour()*60 + now.Minute()
	diff := nowMinutes - clockIn.TotalMinutes()
	if diff < 0 {
		diff += DayMinutes
	}
	if diff <= 0 || diff >= DayMinutes {
		return 0, false
	}
	return diff, true
}

// NetWorkedMinutes applies the mandatory unpaid break: any shift long enough
// to include a lunch break (>= 6 hours) has one hour deducted.
func NetWorkedMinutes(worked int) int {
	if worked >= BreakThresholdMinutes {
		return worked - BreakMinutes
	}
	return worked
}
