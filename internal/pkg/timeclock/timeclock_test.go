package timeclock

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		want    TimeOfDay
		wantOK  bool
	}{
		{"9:00", TimeOfDay{Hours: 9}, true},
		{"09:00", TimeOfDay{Hours: 9}, true},
		{"17:30", TimeOfDay{Hours: 17, Minutes: 30}, true},
		{"26:15", TimeOfDay{Hours: 26, Minutes: 15}, true},
		{"-1:30", TimeOfDay{Hours: 1, Minutes: 30, Negative: true}, true},
		{"", TimeOfDay{}, false},
		{"--:--", TimeOfDay{}, false},
		{"25:99", TimeOfDay{}, false},
		{"30:00", TimeOfDay{}, false},
		{"9", TimeOfDay{}, false},
		{"9:0", TimeOfDay{}, false},
		{"aa:bb", TimeOfDay{}, false},
		{"123:00", TimeOfDay{}, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.input)
		if ok != c.wantOK || got != c.want {
			t.Errorf("ParseClock(%q) = %+v, %v, want %+v, %v", c.input, got, ok, c.want, c.wantOK)
		}
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	cases := []string{"9:00", "17:30", "0:05", "26:00", "-1:30"}
	for _, s := range cases {
		parsed, ok := ParseClock(s)
		if !ok {
			t.Fatalf("ParseClock(%q) unexpectedly failed", s)
		}
		got := FormatMinutes(parsed.TotalMinutes())
		if got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		input int
		want  string
	}{
		{0, "0:00"},
		{450, "7:30"},
		{1200, "20:00"},
		{-90, "-1:30"},
		{510, "8:30"},
	}
	for _, c := range cases {
		got := FormatMinutes(c.input)
		if got != c.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParseDurationText(t *testing.T) {
	cases := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"160:00", 9600, true},
		{"180:00", 10800, true},
		{"7:30", 450, true},
		{"-2:15", -135, true},
		{"--:--", 0, false},
		{"", 0, false},
		{"160:75", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseDurationText(c.input)
		if got != c.want || ok != c.wantOK {
			t.Errorf("ParseDurationText(%q) = %d, %v, want %d, %v", c.input, got, ok, c.want, c.wantOK)
		}
	}
}

func TestWorkedMinutes(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
		wantOK  bool
	}{
		{"09:00", "17:30", 510, true},
		// Overnight shift: raw diff -1200, plus one day = 240.
		{"22:00", "02:00", 240, true},
		{"09:00", "09:00", 0, false},
	}
	for _, c := range cases {
		clockIn, _ := ParseClock(c.in)
		clockOut, _ := ParseClock(c.out)
		got, ok := WorkedMinutes(clockIn, clockOut)
		if got != c.want || ok != c.wantOK {
			t.Errorf("WorkedMinutes(%q, %q) = %d, %v, want %d, %v", c.in, c.out, got, ok, c.want, c.wantOK)
		}
	}
}

func TestNetWorkedMinutes(t *testing.T) {
	// 510 minutes crosses the break threshold, 240 does not.
	if got := NetWorkedMinutes(510); got != 450 {
		t.Errorf("NetWorkedMinutes(510) = %d, want 450", got)
	}
	if got := NetWorkedMinutes(240); got != 240 {
		t.Errorf("NetWorkedMinutes(240) = %d, want 240", got)
	}
	if got := NetWorkedMinutes(360); got != 300 {
		t.Errorf("NetWorkedMinutes(360) = %d, want 300", got)
	}
}

func TestOpenWorkedMinutes(t *testing.T) {
	clockIn, _ := ParseClock("09:00")
	now := time.Date(2024, 6, 10, 17, 30, 0, 0, time.UTC)
	got, ok := OpenWorkedMinutes(clockIn, now)
	if !ok || got != 510 {
		t.Errorf("OpenWorkedMinutes(09:00, 17:30) = %d, %v, want 510, true", got, ok)
	}

	// Clock-in appears to be in the future: it belongs to yesterday.
	lateIn, _ := ParseClock("23:00")
	earlyNow := time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC)
	got, ok = OpenWorkedMinutes(lateIn, earlyNow)
	if !ok || got != 120 {
		t.Errorf("OpenWorkedMinutes(23:00, 01:00) = %d, %v, want 120, true", got, ok)
	}
}
