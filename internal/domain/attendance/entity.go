package attendance

import (
	"time"
)

// DateLayout is the ISO calendar date used as the lookup key.
const DateLayout = "2006-01-02"

// AttendanceRecord is one day of raw attendance as delivered by a lookup source.
type AttendanceRecord struct {
	CheckIn  string `json:"check_in" yaml:"check_in"`
	CheckOut string `json:"check_out" yaml:"check_out"`
	Status   string `json:"status" yaml:"status"`
}

// DayStatus is the classification shown for a single calendar day.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusAbsent  DayStatus = "absent"
	StatusWeekend DayStatus = "weekend"
	StatusBlank   DayStatus = "blank"
)

// DayRecord is the derived view of one calendar day.
type DayRecord struct {
	Date         int       `json:"date"`
	Weekday      string    `json:"weekday"`
	IsToday      bool      `json:"is_today"`
	Status       DayStatus `json:"status"`
	CheckInTime  *string   `json:"check_in_time,omitempty"`
	CheckOutTime *string   `json:"check_out_time,omitempty"`
	HoursWorked  string    `json:"hours_worked"`
	LateBy       *string   `json:"late_by,omitempty"`
	EarlyBy      *string   `json:"early_by,omitempty"`
	FullDate     string    `json:"full_date"`
}

// DayCategory is the per-day input of the summary aggregator.
type DayCategory string

const (
	CategoryPresent DayCategory = "present"
	CategoryOnDuty  DayCategory = "on_duty"
	CategoryLeave   DayCategory = "leave"
	CategoryHoliday DayCategory = "holiday"
	CategoryWeekend DayCategory = "weekend"
	CategoryAbsent  DayCategory = "absent"
)

// SummaryCounts tallies a sequence of categorised days.
// PayableDays always equals PresentDays + OnDutyDays + PaidLeaveDays + Holidays.
type SummaryCounts struct {
	PresentDays   int `json:"present_days"`
	OnDutyDays    int `json:"on_duty_days"`
	PaidLeaveDays int `json:"paid_leave_days"`
	Holidays      int `json:"holidays"`
	WeekendDays   int `json:"weekend_days"`
	PayableDays   int `json:"payable_days"`
}

// SummaryMode selects how counts are reported to the caller.
type SummaryMode string

const (
	ModeDays  SummaryMode = "days"
	ModeHours SummaryMode = "hours"
)

// MonthCell is one slot of a Sunday-first month grid. Padding slots have no date.
type MonthCell struct {
	FullDate     *string   `json:"full_date,omitempty"`
	Date         *int      `json:"date,omitempty"`
	Weekday      *string   `json:"weekday,omitempty"`
	InMonth      bool      `json:"in_month"`
	IsToday      bool      `json:"is_today"`
	Status       DayStatus `json:"status"`
	HoursWorked  string    `json:"hours_worked"`
	CheckInTime  *string   `json:"check_in_time,omitempty"`
	CheckOutTime *string   `json:"check_out_time,omitempty"`
}

// CheckInSession is the state of the manual check-in/check-out control.
type CheckInSession struct {
	ID           string
	EmployeeID   string
	CheckedIn    bool
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Note         string
}

// Policy is the nominal working window used for late/early deltas.
type Policy struct {
	StartHour int
	EndHour   int
}

// DefaultPolicy is the 09:00-18:00 window.
var DefaultPolicy = Policy{StartHour: 9, EndHour: 18}
