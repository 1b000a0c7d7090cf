package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/database"
)

type attendanceRepository struct {
	db       database.Querier
	timezone string
}

// Lookup implements attendance.AttendanceRepository.
// Clock times are rendered in the configured timezone so the builder sees
// the wall-clock values the employee saw.
func (a *attendanceRepository) Lookup(ctx context.Context, filter attendance.LookupFilter) (map[string]attendance.AttendanceRecord, error) {
	query := `
		SELECT DISTINCT ON (date)
			to_char(date, 'YYYY-MM-DD'),
			to_char(clock_in AT TIME ZONE $4, 'HH24:MI'),
			COALESCE(to_char(clock_out AT TIME ZONE $4, 'HH24:MI'), ''),
			status
		FROM attendances
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND clock_in IS NOT NULL
		ORDER BY date, clock_in
	`

	rows, err := a.db.Query(ctx, query, filter.EmployeeID, sqlDate(filter.From), sqlDate(filter.To), a.timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query attendances: %w", attendance.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	lookup := make(map[string]attendance.AttendanceRecord)
	for rows.Next() {
		var (
			date   string
			record attendance.AttendanceRecord
		)
		if err := rows.Scan(&date, &record.CheckIn, &record.CheckOut, &record.Status); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		lookup[date] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate attendances: %w", attendance.ErrSourceUnavailable, err)
	}

	return lookup, nil
}

// DayStatuses implements attendance.AttendanceRepository.
func (a *attendanceRepository) DayStatuses(ctx context.Context, filter attendance.LookupFilter) (map[string]string, error) {
	query := `
		SELECT DISTINCT ON (date) to_char(date, 'YYYY-MM-DD'), status
		FROM attendances
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date, created_at DESC
	`

	rows, err := a.db.Query(ctx, query, filter.EmployeeID, sqlDate(filter.From), sqlDate(filter.To))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query day statuses: %w", attendance.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	statuses := make(map[string]string)
	for rows.Next() {
		var date, status string
		if err := rows.Scan(&date, &status); err != nil {
			return nil, fmt.Errorf("failed to scan day status: %w", err)
		}
		statuses[date] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate day statuses: %w", attendance.ErrSourceUnavailable, err)
	}

	return statuses, nil
}

// sqlDate passes a calendar date as text so the session timezone cannot shift it.
func sqlDate(t time.Time) string {
	return t.Format(attendance.DateLayout)
}

func NewAttendanceRepository(db database.Querier, timezone string) attendance.AttendanceRepository {
	if timezone == "" {
		timezone = "UTC"
	}
	return &attendanceRepository{
		db:       db,
		timezone: timezone,
	}
}
