package attendance

import (
	"context"
)

// AttendanceService defines the dashboard operations over the attendance core
type AttendanceService interface {
	// GetWeek builds the Sunday-first week containing the requested date
	GetWeek(ctx context.Context, req WeekRequest) (WeekResponse, error)

	// GetMonth builds the calendar grid of the requested month
	GetMonth(ctx context.Context, req MonthRequest) (MonthResponse, error)

	// GetSummary tallies the payable days of the requested week
	GetSummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// GetDashboard combines week, summary and check-in status
	GetDashboard(ctx context.Context, req WeekRequest) (DashboardResponse, error)

	// ToggleCheckIn checks the employee in, or out when already checked in
	ToggleCheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// GetCheckIn returns the current check-in state
	GetCheckIn(ctx context.Context, employeeID string) (CheckInResponse, error)

	// SubscribeCheckIn streams check-in changes of one employee until ctx ends
	SubscribeCheckIn(ctx context.Context, employeeID string) (<-chan CheckInEvent, func(), error)

	// ExportWeek renders the table view of a week as an xlsx workbook
	ExportWeek(ctx context.Context, req WeekRequest) ([]byte, error)
}
