package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
)

// DefaultHoursPerDay converts day counts to hours in the hours display mode.
const DefaultHoursPerDay = 8

// Summarize tallies categorised days. Each day increments at most one category
// counter; every non-weekend category also counts as payable. Absent days count nowhere.
func Summarize(days []attendance.DayCategory) attendance.SummaryCounts {
	var counts attendance.SummaryCounts

	for _, day := range days {
		switch day {
		case attendance.CategoryPresent:
			counts.PresentDays++
			counts.PayableDays++
		case attendance.CategoryOnDuty:
			counts.OnDutyDays++
			counts.PayableDays++
		case attendance.CategoryLeave:
			counts.PaidLeaveDays++
			counts.PayableDays++
		case attendance.CategoryHoliday:
			counts.Holidays++
			counts.PayableDays++
		case attendance.CategoryWeekend:
			counts.WeekendDays++
		}
	}

	return counts
}

// Scale converts counts for display. Days mode returns them unchanged,
// hours mode multiplies every counter by hoursPerDay.
func Scale(counts attendance.SummaryCounts, mode attendance.SummaryMode, hoursPerDay int) (attendance.SummaryCounts, error) {
	switch mode {
	case attendance.ModeDays, "":
		return counts, nil
	case attendance.ModeHours:
		return attendance.SummaryCounts{
			PresentDays:   counts.PresentDays * hoursPerDay,
			OnDutyDays:    counts.OnDutyDays * hoursPerDay,
			PaidLeaveDays: counts.PaidLeaveDays * hoursPerDay,
			Holidays:      counts.Holidays * hoursPerDay,
			WeekendDays:   counts.WeekendDays * hoursPerDay,
			PayableDays:   counts.PayableDays * hoursPerDay,
		}, nil
	default:
		return attendance.SummaryCounts{}, fmt.Errorf("%w: %q", attendance.ErrUnknownSummaryMode, mode)
	}
}

func unitFor(mode attendance.SummaryMode) string {
	if mode == attendance.ModeHours {
		return "Hours"
	}
	return "Days"
}
