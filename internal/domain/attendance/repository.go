package attendance

import (
	"context"
	"time"
)

// LookupFilter selects the attendance of one employee over an inclusive date range.
type LookupFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}

// AttendanceRepository is the data-access boundary of the attendance core.
// Implementations never return sample data of their own.
type AttendanceRepository interface {
	// Lookup returns worked days keyed by ISO date. Only days with a check-in are included.
	Lookup(ctx context.Context, filter LookupFilter) (map[string]AttendanceRecord, error)

	// DayStatuses returns the raw status string of every recorded day keyed by ISO date,
	// including leave, holiday and on-duty days without clock times.
	DayStatuses(ctx context.Context, filter LookupFilter) (map[string]string, error)
}
