package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
)

func TestForecast_TypicalMonth(t *testing.T) {
	// 180h worked over 20 days against a 160h schedule.
	report, ok := Forecast(ForecastInput{
		TotalMinutes:              10800,
		ScheduledMinutes:          9600,
		CompletedDays:             20,
		TotalDailyOvertimeMinutes: 1200,
		HasDailyOvertime:          true,
	})
	require.True(t, ok)

	assert.Equal(t, 540, report.AvgMinutesPerDay)
	assert.Equal(t, 60, report.AvgOvertimePerDay)
	assert.Equal(t, attendance.LevelWarning, report.AvgOvertimeLevel)

	assert.Equal(t, 1200, report.LegalOvertime)
	assert.Equal(t, attendance.LevelNormal, report.LegalOvertimeLevel)

	assert.Equal(t, 1200, report.DailyExcessTotal)
	assert.Equal(t, attendance.LevelSafe, report.ForecastLevel)
	assert.Equal(t, "正常", report.BadgeText)
	assert.Empty(t, report.AlertText)
}

func TestForecast_Exceeded(t *testing.T) {
	report, ok := Forecast(ForecastInput{
		TotalMinutes:              13000,
		ScheduledMinutes:          9600,
		CompletedDays:             22,
		TotalDailyOvertimeMinutes: 3000,
		HasDailyOvertime:          true,
	})
	require.True(t, ok)

	assert.Equal(t, 3400, report.LegalOvertime)
	assert.Equal(t, 56, report.LegalOvertimeHours)
	assert.Equal(t, attendance.LevelDanger, report.LegalOvertimeLevel)
	assert.Equal(t, attendance.LevelExceeded, report.ForecastLevel)
	assert.Equal(t, "🚨 56時間超過中！", report.AlertText)
	assert.Equal(t, "超過中", report.BadgeText)
}

func TestForecast_WarningOnProjection(t *testing.T) {
	// Not over the cap yet, but the observed pace projects past it.
	report, ok := Forecast(ForecastInput{
		TotalMinutes:              6000,
		ScheduledMinutes:          9600,
		CompletedDays:             10,
		RemainingWorkdays:         10,
		TotalDailyOvertimeMinutes: 2000,
		HasDailyOvertime:          true,
	})
	require.True(t, ok)

	assert.Equal(t, 0, report.LegalOvertime)
	assert.Equal(t, 200, report.AvgOvertimePerDay)
	assert.Equal(t, 4000, report.ForecastOvertime)
	assert.Equal(t, attendance.LevelWarning, report.ForecastLevel)
	assert.Equal(t, "⚠️ 45時間超過見込み", report.AlertText)
	assert.Equal(t, "注意", report.BadgeText)
}

func TestForecast_SuppressedWhenNothingWorked(t *testing.T) {
	_, ok := Forecast(ForecastInput{ScheduledMinutes: 9600})
	assert.False(t, ok)
}

func TestForecast_FirstDayStillClockedIn(t *testing.T) {
	report, ok := Forecast(ForecastInput{
		TotalMinutes:        300,
		ScheduledMinutes:    9600,
		TodayWorkingMinutes: 300,
		HasDailyOvertime:    true,
	})
	require.True(t, ok)

	// Averaged over one day, not zero.
	assert.Equal(t, 300, report.AvgMinutesPerDay)
	assert.Equal(t, 0, report.AvgOvertimePerDay)
	assert.Equal(t, attendance.LevelCaution, report.AvgOvertimeLevel)
}

func TestForecast_AvgOvertimeFallback(t *testing.T) {
	// Without the per-day excess total the average falls back to the
	// baseline difference.
	report, ok := Forecast(ForecastInput{
		TotalMinutes:  10800,
		CompletedDays: 20,
	})
	require.True(t, ok)
	assert.Equal(t, 60, report.AvgOvertimePerDay)
}

func TestForecast_UnderScheduledIsNotNegative(t *testing.T) {
	report, ok := Forecast(ForecastInput{
		TotalMinutes:     4000,
		ScheduledMinutes: 9600,
		CompletedDays:    10,
		HasDailyOvertime: true,
	})
	require.True(t, ok)
	assert.Equal(t, 0, report.LegalOvertime)
	assert.Equal(t, attendance.LevelCaution, report.AvgOvertimeLevel)
}

func TestCapLevelBoundaries(t *testing.T) {
	assert.Equal(t, attendance.LevelNormal, capLevel(2160))
	assert.Equal(t, attendance.LevelWarning, capLevel(2161))
	assert.Equal(t, attendance.LevelWarning, capLevel(2700))
	assert.Equal(t, attendance.LevelDanger, capLevel(2701))
}
