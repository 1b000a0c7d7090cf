package attendance

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_PresentWeek(t *testing.T) {
	days := []attendance.DayCategory{
		attendance.CategoryWeekend,
		attendance.CategoryPresent,
		attendance.CategoryPresent,
		attendance.CategoryPresent,
		attendance.CategoryPresent,
		attendance.CategoryPresent,
		attendance.CategoryWeekend,
	}

	assert.Equal(t, attendance.SummaryCounts{
		PresentDays: 5,
		PayableDays: 5,
		WeekendDays: 2,
	}, Summarize(days))
}

func TestSummarize_EachCategory(t *testing.T) {
	tests := []struct {
		name     string
		category attendance.DayCategory
		want     attendance.SummaryCounts
	}{
		{"present", attendance.CategoryPresent, attendance.SummaryCounts{PresentDays: 1, PayableDays: 1}},
		{"on duty", attendance.CategoryOnDuty, attendance.SummaryCounts{OnDutyDays: 1, PayableDays: 1}},
		{"leave", attendance.CategoryLeave, attendance.SummaryCounts{PaidLeaveDays: 1, PayableDays: 1}},
		{"holiday", attendance.CategoryHoliday, attendance.SummaryCounts{Holidays: 1, PayableDays: 1}},
		{"weekend", attendance.CategoryWeekend, attendance.SummaryCounts{WeekendDays: 1}},
		{"absent", attendance.CategoryAbsent, attendance.SummaryCounts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize([]attendance.DayCategory{tt.category}))
		})
	}
}

func TestSummarize_PayableInvariant(t *testing.T) {
	categories := []attendance.DayCategory{
		attendance.CategoryPresent,
		attendance.CategoryOnDuty,
		attendance.CategoryLeave,
		attendance.CategoryHoliday,
		attendance.CategoryWeekend,
		attendance.CategoryAbsent,
	}

	// Every sequence of length 4 over all categories.
	n := len(categories)
	for i := 0; i < n*n*n*n; i++ {
		days := []attendance.DayCategory{
			categories[i%n],
			categories[(i/n)%n],
			categories[(i/(n*n))%n],
			categories[(i/(n*n*n))%n],
		}
		c := Summarize(days)
		require.Equal(t, c.PresentDays+c.OnDutyDays+c.PaidLeaveDays+c.Holidays, c.PayableDays, days)
		require.LessOrEqual(t, c.PresentDays+c.OnDutyDays+c.PaidLeaveDays+c.Holidays+c.WeekendDays, len(days))
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, attendance.SummaryCounts{}, Summarize(nil))
}

func TestScale(t *testing.T) {
	counts := attendance.SummaryCounts{
		PresentDays: 3, OnDutyDays: 1, PaidLeaveDays: 1, Holidays: 0, WeekendDays: 2, PayableDays: 5,
	}

	days, err := Scale(counts, attendance.ModeDays, DefaultHoursPerDay)
	require.NoError(t, err)
	assert.Equal(t, counts, days)

	hours, err := Scale(counts, attendance.ModeHours, DefaultHoursPerDay)
	require.NoError(t, err)
	assert.Equal(t, attendance.SummaryCounts{
		PresentDays: 24, OnDutyDays: 8, PaidLeaveDays: 8, Holidays: 0, WeekendDays: 16, PayableDays: 40,
	}, hours)

	_, err = Scale(counts, "weeks", DefaultHoursPerDay)
	assert.True(t, errors.Is(err, attendance.ErrUnknownSummaryMode))
}
