package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
)

// DayRecordBuilder derives day records from an attendance lookup.
// It holds no state besides the policy window and is safe to share.
type DayRecordBuilder struct {
	Policy attendance.Policy
}

// NewDayRecordBuilder creates a builder for the given policy window
func NewDayRecordBuilder(policy attendance.Policy) DayRecordBuilder {
	return DayRecordBuilder{Policy: policy}
}

// BuildWeek builds the week containing reference with the default 09:00-18:00 policy.
func BuildWeek(reference time.Time, lookup map[string]attendance.AttendanceRecord, now time.Time) ([]attendance.DayRecord, error) {
	return NewDayRecordBuilder(attendance.DefaultPolicy).BuildWeek(reference, lookup, now)
}

// WeekDates returns the seven calendar dates of the Sunday-first week containing reference.
//
// The Monday is reference - weekday + 1, so a Sunday reference opens its own week.
// Monday..Saturday are produced first and the preceding Sunday is prepended.
func WeekDates(reference time.Time) []time.Time {
	ref := calendarDate(reference)
	monday := ref.AddDate(0, 0, 1-int(ref.Weekday()))

	dates := make([]time.Time, 0, 7)
	dates = append(dates, monday.AddDate(0, 0, -1))
	for i := 0; i < 6; i++ {
		dates = append(dates, monday.AddDate(0, 0, i))
	}
	return dates
}

// WeekStart returns the Sunday that opens the week containing reference.
func WeekStart(reference time.Time) time.Time {
	return WeekDates(reference)[0]
}

// BuildWeek returns seven records, Sunday first, for the week containing reference.
// now is the evaluation instant used for IsToday.
func (b DayRecordBuilder) BuildWeek(reference time.Time, lookup map[string]attendance.AttendanceRecord, now time.Time) ([]attendance.DayRecord, error) {
	dates := WeekDates(reference)

	days := make([]attendance.DayRecord, 0, len(dates))
	for _, date := range dates {
		day, err := b.dayRecord(date, lookup, now)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, nil
}

func (b DayRecordBuilder) dayRecord(date time.Time, lookup map[string]attendance.AttendanceRecord, now time.Time) (attendance.DayRecord, error) {
	key := date.Format(attendance.DateLayout)
	day := attendance.DayRecord{
		Date:        date.Day(),
		Weekday:     date.Format("Mon"),
		IsToday:     sameDay(date, now),
		HoursWorked: "00:00",
		FullDate:    key,
	}

	if isWeekend(date) {
		day.Status = attendance.StatusWeekend
		return day, nil
	}

	entry, ok := lookup[key]
	if !ok {
		day.Status = attendance.StatusAbsent
		return day, nil
	}

	in, err := parseClock(entry.CheckIn)
	if err != nil {
		return attendance.DayRecord{}, fmt.Errorf("check-in on %s: %w", key, err)
	}

	day.Status = attendance.StatusPresent
	checkIn := entry.CheckIn
	day.CheckInTime = &checkIn

	if in.hour >= b.Policy.StartHour {
		lateBy := formatHHMM(in.hour-b.Policy.StartHour, in.minute)
		day.LateBy = &lateBy
	}

	// Open session: checked in, not yet out.
	if entry.CheckOut == "" {
		return day, nil
	}

	out, err := parseClock(entry.CheckOut)
	if err != nil {
		return attendance.DayRecord{}, fmt.Errorf("check-out on %s: %w", key, err)
	}

	if out.before(in) {
		return attendance.DayRecord{}, fmt.Errorf("check-out on %s: %w: %q is before check-in %q",
			key, attendance.ErrInvalidTimeFormat, entry.CheckOut, entry.CheckIn)
	}

	checkOut := entry.CheckOut
	day.CheckOutTime = &checkOut
	// Minutes are subtracted without borrowing from the hour.
	day.HoursWorked = formatHHMM(out.hour-in.hour, abs(out.minute-in.minute))

	if out.hour <= b.Policy.EndHour {
		earlyBy := formatHHMM(b.Policy.EndHour-out.hour, out.minute)
		day.EarlyBy = &earlyBy
	}

	return day, nil
}

// TableStatus is the status the table view shows for a day: weekend and present
// pass through, today and future days are blank, past days without a check-in are absent.
func TableStatus(day attendance.DayRecord, now time.Time) attendance.DayStatus {
	if day.Status == attendance.StatusWeekend || day.Status == attendance.StatusPresent {
		return day.Status
	}

	date, err := time.Parse(attendance.DateLayout, day.FullDate)
	if err != nil {
		return attendance.StatusBlank
	}

	today := calendarDate(now)
	if date.Before(today) && day.CheckInTime == nil {
		return attendance.StatusAbsent
	}

	return attendance.StatusBlank
}

// CategorizeWeek turns built day records into summary categories, keeping
// their order. Present and weekend records keep their builder status. A day
// the builder marks absent is refined by its source status, so only leave,
// holiday and on-duty rows can lift it out of absent.
func CategorizeWeek(days []attendance.DayRecord, statuses map[string]string) []attendance.DayCategory {
	categories := make([]attendance.DayCategory, 0, len(days))
	for _, day := range days {
		switch day.Status {
		case attendance.StatusPresent:
			categories = append(categories, attendance.CategoryPresent)
		case attendance.StatusWeekend:
			categories = append(categories, attendance.CategoryWeekend)
		default:
			categories = append(categories, absenceCategory(statuses[day.FullDate]))
		}
	}

	return categories
}

// absenceCategory classifies a day without a check-in by its source status.
// Attendance statuses such as present or waiting_approval need a check-in
// to count, so on their own they stay absent.
func absenceCategory(status string) attendance.DayCategory {
	if category := categoryFor(status); category != attendance.CategoryPresent {
		return category
	}
	return attendance.CategoryAbsent
}

// categoryFor normalises a source status string.
func categoryFor(status string) attendance.DayCategory {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "present", "on_time", "late", "early_leave", "wfh", "half_day", "waiting_approval":
		return attendance.CategoryPresent
	case "on_duty", "onduty":
		return attendance.CategoryOnDuty
	case "leave", "on_leave", "paid_leave":
		return attendance.CategoryLeave
	case "holiday":
		return attendance.CategoryHoliday
	default:
		return attendance.CategoryAbsent
	}
}

func isWeekend(date time.Time) bool {
	return date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
}
