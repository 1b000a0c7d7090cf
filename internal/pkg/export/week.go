package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

var weekHeaders = []string{"Date", "Day", "First In", "Last Out", "Total Hours", "Late By", "Early By", "Status"}

// WeekWorkbook renders the table view of a week as an xlsx workbook.
func WeekWorkbook(week attendance.WeekResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("Failed to close workbook", "error", err)
		}
	}()

	sheetName := "Attendance"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	title := fmt.Sprintf("Attendance %s (%s)", week.RangeLabel, week.EmployeeID)
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheetName, "A1", "H1"); err != nil {
		return nil, err
	}

	for i, header := range weekHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F3F4F6"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A2", "H2", headerStyle); err != nil {
		return nil, err
	}

	for r, day := range week.Days {
		row := []interface{}{
			tableDate(day.FullDate),
			day.Weekday,
			withPeriod(day.CheckInTime),
			withPeriod(day.CheckOutTime),
			day.HoursWorked,
			deref(day.LateBy),
			deref(day.EarlyBy),
			statusLabel(day.TableStatus),
		}
		cell, err := excelize.CoordinatesToCellName(1, r+3)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+3, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "H", 14); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// tableDate turns YYYY-MM-DD into DD-MM-YYYY.
func tableDate(fullDate string) string {
	parts := strings.Split(fullDate, "-")
	if len(parts) != 3 {
		return fullDate
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// withPeriod appends AM/PM to an HH:MM reading.
func withPeriod(t *string) string {
	if t == nil || len(*t) < 4 {
		return ""
	}
	clock := *t
	if len(clock) > 5 {
		clock = clock[:5]
	}
	hour, err := strconv.Atoi(strings.Split(clock, ":")[0])
	if err != nil {
		return clock
	}
	if hour >= 12 {
		return clock + " PM"
	}
	return clock + " AM"
}

func statusLabel(status attendance.DayStatus) string {
	switch status {
	case attendance.StatusPresent:
		return "Present"
	case attendance.StatusAbsent:
		return "Absent"
	case attendance.StatusWeekend:
		return "Weekend"
	default:
		return ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
