package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/cache"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/sse"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/timeclock"
)

// AttendanceServiceImpl owns the monthly snapshot cache. All three caller
// surfaces read through it, so concurrent refreshes collapse into one
// underlying fetch and every caller sees the same snapshot.
type AttendanceServiceImpl struct {
	fetcher    attendance.SnapshotFetcher
	holidaySvc holiday.Service
	kv         store.KVStore
	hub        *sse.Hub
	cache      *cache.Cache[attendance.MonthlySnapshot]

	now func() time.Time
}

// NewAttendanceService builds the service and hydrates the snapshot cache
// from the key-value store, so the first reader after a restart sees the
// last-known snapshot subject to the normal TTL rules.
func NewAttendanceService(
	ctx context.Context,
	fetcher attendance.SnapshotFetcher,
	holidaySvc holiday.Service,
	kv store.KVStore,
	hub *sse.Hub,
	snapshotTTL time.Duration,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		fetcher:    fetcher,
		holidaySvc: holidaySvc,
		kv:         kv,
		hub:        hub,
		now:        time.Now,
	}
	s.cache = cache.New(snapshotTTL, s.buildSnapshot)
	s.hydrate(ctx)
	return s
}

func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("loading snapshot: %w", err)
	}

	now := s.now()
	rec := snap.Days[now.Day()]

	resp := attendance.TodayStatusResponse{
		Date:      now.Format(holiday.DateKey),
		IsWorking: rec.IsCurrentlyWorking(),
	}
	if rec.ClockIn != nil {
		v := rec.ClockIn.String()
		resp.ClockInTime = &v
	}
	if rec.ClockOut != nil {
		v := rec.ClockOut.String()
		resp.ClockOutTime = &v
	}
	resp.Summary = buildSummary(snap, rec, now)
	return resp, nil
}

func (s *AttendanceServiceImpl) GetMissedPunches(ctx context.Context) (attendance.MissedPunchListResponse, error) {
	var (
		snap attendance.MonthlySnapshot
		cal  holiday.Calendar
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.cache.Get(gctx)
		return err
	})
	g.Go(func() error {
		cal = s.holidaySvc.Calendar(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.MissedPunchListResponse{}, fmt.Errorf("loading snapshot: %w", err)
	}

	items := DetectMissedPunches(snap.Days, snap.Year, snap.Month, s.now(), cal)
	return attendance.MissedPunchListResponse{Count: len(items), Items: items}, nil
}

// GetWorkdayVerdict is a pure calendar judgment: weekday plus the holiday
// mapping, independent of any scraped page state.
func (s *AttendanceServiceImpl) GetWorkdayVerdict(ctx context.Context, date time.Time) (attendance.WorkdayVerdictResponse, error) {
	if date.IsZero() {
		now := s.now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	cal := s.holidaySvc.Calendar(ctx)
	resp := attendance.WorkdayVerdictResponse{
		Date:      date.Format(holiday.DateKey),
		IsWorkday: !cal.IsHoliday(date),
		Weekday:   WeekdayLabel(date),
	}
	if name := cal.Name(date); name != "" {
		resp.HolidayName = &name
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) GetOvertimeReport(ctx context.Context) (attendance.OvertimeReport, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return attendance.OvertimeReport{}, fmt.Errorf("loading snapshot: %w", err)
	}

	now := s.now()
	rec := snap.Days[now.Day()]

	todayWorking := 0
	if rec.IsCurrentlyWorking() {
		if open, ok := timeclock.OpenWorkedMinutes(*rec.ClockIn, now); ok {
			todayWorking = timeclock.NetWorkedMinutes(open)
		}
	}

	total := todayWorking
	if snap.TotalMinutes != nil {
		total += *snap.TotalMinutes
	}

	report, ok := Forecast(ForecastInput{
		TotalMinutes:              total,
		CompletedDays:             snap.CompletedDays,
		ScheduledMinutes:          snap.ScheduledMinutes,
		ScheduledDays:             snap.ScheduledDays,
		TodayWorkingMinutes:       todayWorking,
		RemainingWorkdays:         snap.RemainingWorkdays,
		TotalDailyOvertimeMinutes: snap.TotalDailyOvertimeMinutes,
		HasDailyOvertime:          true,
	})
	if !ok {
		return attendance.OvertimeReport{}, attendance.ErrNoReportData
	}
	return report, nil
}

// InvalidateCache drops the cached snapshot and its persisted copy so the
// next read re-fetches. Called after a successful punch action. Idempotent.
func (s *AttendanceServiceImpl) InvalidateCache(ctx context.Context) {
	s.cache.Invalidate()
	if err := s.kv.Remove(ctx, store.KeySnapshot); err != nil {
		slog.Error("failed to remove persisted snapshot", "error", err)
	}
	slog.Info("snapshot cache invalidated")
}

// buildSnapshot is the cache's fetch delegate: scrape, normalize, aggregate,
// persist, notify.
func (s *AttendanceServiceImpl) buildSnapshot(ctx context.Context) (attendance.MonthlySnapshot, error) {
	raw, err := s.fetcher.FetchMonthSnapshot(ctx)
	if err != nil {
		return attendance.MonthlySnapshot{}, err
	}

	now := s.now()
	snap := normalize(raw, now)

	cal := s.holidaySvc.Calendar(ctx)
	totals := Aggregate(snap.Days, snap.Year, snap.Month, now, cal)
	snap.CompletedDays = totals.CompletedDays
	snap.TotalDailyOvertimeMinutes = totals.TotalDailyOvertimeMinutes
	snap.RemainingWorkdays = totals.RemainingWorkdays

	s.persist(ctx, snap)
	s.hub.Broadcast(sse.Event{
		Event: "snapshot_updated",
		Data:  map[string]interface{}{"fetched_at": snap.FetchedAt},
	})

	slog.Info("monthly snapshot refreshed",
		"completed_days", snap.CompletedDays,
		"remaining_workdays", snap.RemainingWorkdays,
		"daily_overtime_minutes", snap.TotalDailyOvertimeMinutes)
	return snap, nil
}

// normalize turns the agent's raw rows into a full-month day map. Every day
// from the 1st through the last day of the month gets an entry; dates the
// agent reported no row for stay marked absent. Malformed time texts are
// skipped, never defaulted to zero.
func normalize(raw attendance.RawMonthSnapshot, now time.Time) attendance.MonthlySnapshot {
	snap := attendance.MonthlySnapshot{
		FetchedAt: now,
		Year:      now.Year(),
		Month:     now.Month(),
		Days:      make(map[int]attendance.DayRecord),

		ScheduledDays: raw.ScheduledDays,
		ActualDays:    raw.ActualDays,
	}

	for day := 1; day <= snap.DaysInMonth(); day++ {
		snap.Days[day] = attendance.DayRecord{Day: day}
	}

	for _, r := range raw.Days {
		date, err := time.Parse(holiday.DateKey, r.Date)
		if err != nil || date.Year() != snap.Year || date.Month() != snap.Month {
			slog.Warn("skipping row outside the current month", "date", r.Date)
			continue
		}

		rec := attendance.DayRecord{
			Day:             date.Day(),
			SourceIsHoliday: r.SourceIsHoliday,
			HasEntry:        true,
		}
		if t, ok := timeclock.ParseClock(r.ClockInText); ok {
			rec.ClockIn = &t
		} else if malformedTimeText(r.ClockInText) {
			slog.Warn("skipping malformed clock-in text", "date", r.Date, "text", r.ClockInText)
		}
		if t, ok := timeclock.ParseClock(r.ClockOutText); ok {
			rec.ClockOut = &t
		} else if malformedTimeText(r.ClockOutText) {
			slog.Warn("skipping malformed clock-out text", "date", r.Date, "text", r.ClockOutText)
		}
		snap.Days[date.Day()] = rec
	}

	if minutes, ok := timeclock.ParseDurationText(raw.ScheduledHoursText); ok {
		snap.ScheduledMinutes = minutes
	}
	if minutes, ok := timeclock.ParseDurationText(raw.TotalHoursText); ok {
		snap.TotalMinutes = &minutes
	}

	return snap
}

// malformedTimeText distinguishes the page's normal "not punched"
// placeholders from genuinely broken input worth logging.
func malformedTimeText(s string) bool {
	return s != "" && s != "--:--"
}

func buildSummary(snap attendance.MonthlySnapshot, rec attendance.DayRecord, now time.Time) *attendance.TodaySummary {
	sum := &attendance.TodaySummary{
		ScheduledHours:    timeclock.FormatMinutes(snap.ScheduledMinutes),
		RemainingWorkdays: snap.RemainingWorkdays,
		CompletedDays:     snap.CompletedDays,
	}

	if snap.TotalMinutes == nil {
		sum.TotalHours = "--:--"
		sum.OverUnder = "--:--"
		sum.RequiredPerDay = "-"
		return sum
	}

	// While a shift is open, today's elapsed time counts toward the total
	// so the pace reflects reality, not the last completed day.
	total := *snap.TotalMinutes
	if rec.IsCurrentlyWorking() {
		if open, ok := timeclock.OpenWorkedMinutes(*rec.ClockIn, now); ok {
			total += timeclock.NetWorkedMinutes(open)
		}
	}

	sum.TotalHours = timeclock.FormatMinutes(total)
	sum.OverUnder = timeclock.FormatMinutes(total - snap.ScheduledMinutes)

	remaining := snap.ScheduledMinutes - total
	switch {
	case remaining <= 0:
		sum.RequiredPerDay = "達成"
	case snap.RemainingWorkdays > 0:
		required := (remaining + snap.RemainingWorkdays - 1) / snap.RemainingWorkdays
		sum.RequiredPerDay = timeclock.FormatMinutes(required)
		if rec.IsCurrentlyWorking() {
			target := (rec.ClockIn.TotalMinutes() + required + timeclock.BreakMinutes) % timeclock.DayMinutes
			v := timeclock.FormatMinutes(target)
			sum.TargetClockOut = &v
		}
	default:
		// Month is out of workdays with hours still owed.
		sum.RequiredPerDay = timeclock.FormatMinutes(remaining)
	}

	return sum
}

func (s *AttendanceServiceImpl) persist(ctx context.Context, snap attendance.MonthlySnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("failed to marshal snapshot", "error", err)
		return
	}
	if err := s.kv.Set(ctx, map[string][]byte{store.KeySnapshot: data}); err != nil {
		slog.Error("failed to persist snapshot", "error", err)
	}
}

func (s *AttendanceServiceImpl) hydrate(ctx context.Context) {
	entries, err := s.kv.Get(ctx, store.KeySnapshot)
	if err != nil {
		slog.Error("failed to load persisted snapshot", "error", err)
		return
	}
	data, ok := entries[store.KeySnapshot]
	if !ok {
		return
	}

	var snap attendance.MonthlySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Error("failed to unmarshal persisted snapshot", "error", err)
		return
	}
	s.cache.Seed(snap, snap.FetchedAt)
	slog.Info("snapshot hydrated from storage", "fetched_at", snap.FetchedAt)
}
