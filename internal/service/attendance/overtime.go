package attendance

import (
	"fmt"
	"math"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/timeclock"
)

// AlertWarningText is what callers render when the forecast crosses the
// legal cap. The exceeded alert carries the hours already over.
const AlertWarningText = "⚠️ 45時間超過見込み"

// ForecastInput collects everything the overtime forecast needs. All fields
// are minutes except the day counts.
type ForecastInput struct {
	TotalMinutes        int
	CompletedDays       int
	ScheduledMinutes    int
	ScheduledDays       int
	TodayWorkingMinutes int
	RemainingWorkdays   int

	// TotalDailyOvertimeMinutes is the preferred basis for the per-day
	// average; HasDailyOvertime=false falls back to the cruder
	// average-minus-baseline estimate.
	TotalDailyOvertimeMinutes int
	HasDailyOvertime          bool
}

// Forecast produces the overtime report. ok=false means there is nothing
// meaningful to report yet and callers must suppress display entirely
// rather than show zeros.
func Forecast(in ForecastInput) (attendance.OvertimeReport, bool) {
	if in.CompletedDays == 0 && in.TodayWorkingMinutes == 0 {
		return attendance.OvertimeReport{}, false
	}

	// First day of the month, still clocked in: average over one day.
	avgDays := in.CompletedDays
	if avgDays == 0 {
		avgDays = 1
	}

	avgMinutes := roundDiv(in.TotalMinutes, avgDays)
	var avgOvertime int
	if in.HasDailyOvertime {
		avgOvertime = roundDiv(in.TotalDailyOvertimeMinutes, avgDays)
	} else {
		avgOvertime = avgMinutes - timeclock.StandardDayMinutes
	}

	legal := 0
	if in.ScheduledMinutes > 0 && in.TotalMinutes > in.ScheduledMinutes {
		legal = in.TotalMinutes - in.ScheduledMinutes
	}

	forecast := in.TotalDailyOvertimeMinutes + avgOvertime*in.RemainingWorkdays

	report := attendance.OvertimeReport{
		AvgMinutesPerDay:  avgMinutes,
		AvgOvertimePerDay: avgOvertime,
		AvgOvertimeLevel:  avgOvertimeLevel(avgOvertime),

		DailyExcessTotal: in.TotalDailyOvertimeMinutes,
		DailyExcessLevel: capLevel(in.TotalDailyOvertimeMinutes),

		LegalOvertime:      legal,
		LegalOvertimeLevel: capLevel(legal),
		LegalOvertimeHours: legal / 60,

		ForecastOvertime: forecast,
	}

	switch {
	case legal > attendance.OvertimeLimitMinutes:
		report.ForecastLevel = attendance.LevelExceeded
		report.AlertText = fmt.Sprintf("🚨 %d時間超過中！", legal/60)
		report.BadgeText = "超過中"
	case forecast > attendance.OvertimeLimitMinutes:
		report.ForecastLevel = attendance.LevelWarning
		report.AlertText = AlertWarningText
		report.BadgeText = "注意"
	default:
		report.ForecastLevel = attendance.LevelSafe
		report.BadgeText = "正常"
	}

	return report, true
}

func roundDiv(total, days int) int {
	return int(math.Round(float64(total) / float64(days)))
}

func avgOvertimeLevel(minutes int) attendance.Level {
	switch {
	case minutes < 0:
		return attendance.LevelSafe
	case minutes < 60:
		return attendance.LevelCaution
	case minutes < 120:
		return attendance.LevelWarning
	default:
		return attendance.LevelDanger
	}
}

// capLevel grades a total against the 45-hour legal cap: warning from 80%
// of the cap, danger past it.
func capLevel(minutes int) attendance.Level {
	switch {
	case minutes > attendance.OvertimeLimitMinutes:
		return attendance.LevelDanger
	case minutes > attendance.OvertimeLimitMinutes*8/10:
		return attendance.LevelWarning
	default:
		return attendance.LevelNormal
	}
}
