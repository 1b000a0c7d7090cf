package attendance

import (
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

type WeekRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *WeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM, defaults to the current month
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsEmpty(r.Month) {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Mode       string `json:"mode"` // days | hours
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	week := WeekRequest{EmployeeID: r.EmployeeID, Date: r.Date}
	if err := week.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	if r.Mode != "" && !validator.IsInSlice(r.Mode, []string{string(ModeDays), string(ModeHours)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: days, hours",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	Note       string `json:"note"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.HasMaxLength(r.Note, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

// WeekDayResponse is a day record plus the status the table view shows for it.
type WeekDayResponse struct {
	DayRecord
	TableStatus DayStatus `json:"table_status"`
}

type WeekResponse struct {
	EmployeeID   string            `json:"employee_id"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	RangeLabel   string            `json:"range_label"` // D-M-YYYY - D-M-YYYY
	PreviousDate string            `json:"previous_date"`
	NextDate     string            `json:"next_date"`
	Days         []WeekDayResponse `json:"days"`
}

type MonthResponse struct {
	EmployeeID string      `json:"employee_id"`
	Month      string      `json:"month"`       // YYYY-MM
	MonthLabel string      `json:"month_label"` // November 2024
	Cells      []MonthCell `json:"cells"`
}

type SummaryResponse struct {
	EmployeeID string        `json:"employee_id"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Mode       SummaryMode   `json:"mode"`
	Unit       string        `json:"unit"` // Days | Hours
	Counts     SummaryCounts `json:"counts"`
}

type CheckInResponse struct {
	ID           string  `json:"id,omitempty"`
	EmployeeID   string  `json:"employee_id"`
	CheckedIn    bool    `json:"checked_in"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Note         string  `json:"note,omitempty"`
	Elapsed      string  `json:"elapsed"` // HH:MM:SS
}

type DashboardResponse struct {
	Week    WeekResponse    `json:"week"`
	Summary SummaryResponse `json:"summary"`
	CheckIn CheckInResponse `json:"check_in"`
}

// CheckInEvent is pushed to check-in subscribers whenever a session changes.
type CheckInEvent struct {
	Event string          `json:"event"`
	Data  CheckInResponse `json:"data"`
}
