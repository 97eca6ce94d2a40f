package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/sse"
	"github.com/kintai-assist/kintai-backend-go/internal/repository/memory"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	raw   attendance.RawMonthSnapshot
	err   error
}

func (f *fakeFetcher) FetchMonthSnapshot(ctx context.Context) (attendance.RawMonthSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return attendance.RawMonthSnapshot{}, f.err
	}
	return f.raw, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stubHolidaySvc struct {
	cal holiday.Calendar
}

func (s *stubHolidaySvc) Calendar(ctx context.Context) holiday.Calendar {
	return s.cal
}

// juneSnapshot mirrors a typical mid-month scrape: a completed first week,
// an open shift today (June 10th), and empty rows for the days ahead.
func juneSnapshot() attendance.RawMonthSnapshot {
	raw := attendance.RawMonthSnapshot{
		ScheduledHoursText: "160:00",
		TotalHoursText:     "80:00",
		ScheduledDays:      20,
		ActualDays:         5,
	}
	for day := 3; day <= 7; day++ {
		raw.Days = append(raw.Days, attendance.RawDayRecord{
			Date:         fmt.Sprintf("2024-06-%02d", day),
			ClockInText:  "09:00",
			ClockOutText: "18:00",
		})
	}
	raw.Days = append(raw.Days, attendance.RawDayRecord{
		Date:         "2024-06-10",
		ClockInText:  "09:00",
		ClockOutText: "--:--",
	})
	for _, day := range []int{11, 12, 13, 14, 17, 18, 19, 20, 21, 24, 25, 26, 27, 28} {
		raw.Days = append(raw.Days, attendance.RawDayRecord{
			Date:         fmt.Sprintf("2024-06-%02d", day),
			ClockInText:  "--:--",
			ClockOutText: "--:--",
		})
	}
	return raw
}

func newTestService(t *testing.T, fetcher *fakeFetcher, kv store.KVStore, now time.Time) *AttendanceServiceImpl {
	t.Helper()
	svc := NewAttendanceService(context.Background(), fetcher, &stubHolidaySvc{}, kv, sse.NewHub(), 30*time.Second).(*AttendanceServiceImpl)
	if !now.IsZero() {
		svc.now = func() time.Time { return now }
	}
	return svc
}

func TestGetTodayStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestService(t, &fakeFetcher{raw: juneSnapshot()}, memory.NewKVRepository(), now)

	resp, err := svc.GetTodayStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", resp.Date)
	assert.True(t, resp.IsWorking)
	require.NotNil(t, resp.ClockInTime)
	assert.Equal(t, "9:00", *resp.ClockInTime)
	assert.Nil(t, resp.ClockOutTime)

	sum := resp.Summary
	require.NotNil(t, sum)
	assert.Equal(t, "160:00", sum.ScheduledHours)
	// 80h reported plus 5h of the open shift, under the break threshold.
	assert.Equal(t, "85:00", sum.TotalHours)
	assert.Equal(t, "-75:00", sum.OverUnder)
	assert.Equal(t, 5, sum.CompletedDays)
	assert.Equal(t, 15, sum.RemainingWorkdays)
	assert.Equal(t, "5:00", sum.RequiredPerDay)
	require.NotNil(t, sum.TargetClockOut)
	assert.Equal(t, "15:00", *sum.TargetClockOut)
}

func TestGetMissedPunches(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	raw := juneSnapshot()
	// Break the 4th: clock-in only.
	raw.Days[1].ClockOutText = "--:--"
	svc := newTestService(t, &fakeFetcher{raw: raw}, memory.NewKVRepository(), now)

	resp, err := svc.GetMissedPunches(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "2024-06-04", resp.Items[0].Date)
	assert.Equal(t, attendance.MissedClockOut, resp.Items[0].Kind)
}

func TestSnapshotFetchedOncePerTTL(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{raw: juneSnapshot()}
	svc := newTestService(t, fetcher, memory.NewKVRepository(), now)

	_, err := svc.GetTodayStatus(context.Background())
	require.NoError(t, err)
	_, err = svc.GetMissedPunches(context.Background())
	require.NoError(t, err)
	_, err = svc.GetOvertimeReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.callCount())
}

func TestInvalidateCacheForcesRefetch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{raw: juneSnapshot()}
	kv := memory.NewKVRepository()
	svc := newTestService(t, fetcher, kv, now)

	_, err := svc.GetTodayStatus(ctx)
	require.NoError(t, err)

	svc.InvalidateCache(ctx)
	entries, err := kv.Get(ctx, store.KeySnapshot)
	require.NoError(t, err)
	assert.NotContains(t, entries, store.KeySnapshot)

	// Idempotent.
	svc.InvalidateCache(ctx)

	_, err = svc.GetTodayStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestSessionExpiredPropagates(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestService(t, &fakeFetcher{err: attendance.ErrSessionExpired}, memory.NewKVRepository(), now)

	_, err := svc.GetTodayStatus(context.Background())
	assert.ErrorIs(t, err, attendance.ErrSessionExpired)
}

func TestHydratedSnapshotServedWithoutFetch(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVRepository()

	realNow := time.Now()
	snap := attendance.MonthlySnapshot{
		FetchedAt: realNow,
		Year:      realNow.Year(),
		Month:     realNow.Month(),
		Days:      map[int]attendance.DayRecord{},
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, map[string][]byte{store.KeySnapshot: data}))

	fetcher := &fakeFetcher{err: attendance.ErrFetchFailed}
	svc := newTestService(t, fetcher, kv, time.Time{})

	resp, err := svc.GetMissedPunches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 0, fetcher.callCount())
}

func TestGetWorkdayVerdict(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{raw: juneSnapshot()}
	svc := NewAttendanceService(ctx, fetcher, &stubHolidaySvc{
		cal: holiday.Calendar{Days: map[string]string{"2024-06-12": "振替休日"}},
	}, memory.NewKVRepository(), sse.NewHub(), 30*time.Second).(*AttendanceServiceImpl)

	verdict, err := svc.GetWorkdayVerdict(ctx, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, verdict.IsWorkday)
	assert.Equal(t, "水", verdict.Weekday)
	require.NotNil(t, verdict.HolidayName)
	assert.Equal(t, "振替休日", *verdict.HolidayName)

	verdict, err = svc.GetWorkdayVerdict(ctx, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, verdict.IsWorkday)
	assert.Nil(t, verdict.HolidayName)

	// The verdict is a calendar judgment; no scrape is needed for it.
	assert.Equal(t, 0, fetcher.callCount())
}

func TestGetOvertimeReport_NoData(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	raw := attendance.RawMonthSnapshot{ScheduledHoursText: "160:00"}
	svc := newTestService(t, &fakeFetcher{raw: raw}, memory.NewKVRepository(), now)

	_, err := svc.GetOvertimeReport(context.Background())
	assert.ErrorIs(t, err, attendance.ErrNoReportData)
}
