package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
)

// MonthBounds returns the first and last calendar day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// BuildMonth lays out the month containing month as a Sunday-first grid.
// Leading and trailing padding cells are blank so the grid length is a multiple of 7.
// Weekdays without a record are absent only when strictly before the evaluation day.
func (b DayRecordBuilder) BuildMonth(month time.Time, lookup map[string]attendance.AttendanceRecord, now time.Time) ([]attendance.MonthCell, error) {
	first, last := MonthBounds(month)
	today := calendarDate(now)

	cells := make([]attendance.MonthCell, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, blankCell())
	}

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		day, err := b.dayRecord(date, lookup, now)
		if err != nil {
			return nil, err
		}

		status := day.Status
		if status == attendance.StatusAbsent && !date.Before(today) {
			status = attendance.StatusBlank
		}

		fullDate, dayOfMonth, weekday := day.FullDate, day.Date, day.Weekday
		cells = append(cells, attendance.MonthCell{
			FullDate:     &fullDate,
			Date:         &dayOfMonth,
			Weekday:      &weekday,
			InMonth:      true,
			IsToday:      day.IsToday,
			Status:       status,
			HoursWorked:  day.HoursWorked,
			CheckInTime:  day.CheckInTime,
			CheckOutTime: day.CheckOutTime,
		})
	}

	for len(cells)%7 != 0 {
		cells = append(cells, blankCell())
	}

	return cells, nil
}

func blankCell() attendance.MonthCell {
	return attendance.MonthCell{
		Status:      attendance.StatusBlank,
		HoursWorked: "00:00",
	}
}
