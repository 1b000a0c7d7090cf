package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/config"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	builder     DayRecordBuilder
	checkIns    *CheckInTracker
	events      *sse.Hub
	location    *time.Location
	hoursPerDay int
	now         func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	checkIns *CheckInTracker,
	events *sse.Hub,
	cfg config.AttendanceConfig,
	timezone string,
) attendance.AttendanceService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Warn("Unknown timezone, falling back to UTC", "timezone", timezone, "error", err)
		loc = time.UTC
	}

	if events == nil {
		events = sse.NewHub()
	}

	hoursPerDay := cfg.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}

	svc := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		builder: NewDayRecordBuilder(attendance.Policy{
			StartHour: cfg.PolicyStartHour,
			EndHour:   cfg.PolicyEndHour,
		}),
		checkIns:    checkIns,
		events:      events,
		location:    loc,
		hoursPerDay: hoursPerDay,
		now:         time.Now,
	}
	checkIns.OnChange(svc.publishCheckIn)

	return svc
}

const checkInEventName = "check_in"

func (s *AttendanceServiceImpl) publishCheckIn(session attendance.CheckInSession) {
	s.events.Publish(sse.Event{
		Topic: session.EmployeeID,
		Name:  checkInEventName,
		Data:  s.checkInResponse(session, s.evaluationInstant()),
	})
}

// evaluationInstant is the current time in the configured location
func (s *AttendanceServiceImpl) evaluationInstant() time.Time {
	return s.now().In(s.location)
}

// referenceDate parses YYYY-MM-DD, defaulting to the calendar day of now
func referenceDate(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return calendarDate(now), nil
	}
	parsed, err := time.Parse(attendance.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", attendance.ErrInvalidReferenceDate, date)
	}
	return parsed, nil
}

// formatRangeLabel formats a week as D-M-YYYY - D-M-YYYY
func formatRangeLabel(start, end time.Time) string {
	return fmt.Sprintf("%d-%d-%d - %d-%d-%d",
		start.Day(), int(start.Month()), start.Year(),
		end.Day(), int(end.Month()), end.Year(),
	)
}

// GetWeek implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetWeek(ctx context.Context, req attendance.WeekRequest) (attendance.WeekResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WeekResponse{}, err
	}

	now := s.evaluationInstant()
	reference, err := referenceDate(req.Date, now)
	if err != nil {
		return attendance.WeekResponse{}, err
	}

	start := WeekStart(reference)
	end := start.AddDate(0, 0, 6)

	lookup, err := s.AttendanceRepository.Lookup(ctx, attendance.LookupFilter{
		EmployeeID: req.EmployeeID,
		From:       start,
		To:         end,
	})
	if err != nil {
		return attendance.WeekResponse{}, fmt.Errorf("failed to look up attendance: %w", err)
	}

	days, err := s.builder.BuildWeek(reference, lookup, now)
	if err != nil {
		return attendance.WeekResponse{}, err
	}

	result := attendance.WeekResponse{
		EmployeeID:   req.EmployeeID,
		StartDate:    start.Format(attendance.DateLayout),
		EndDate:      end.Format(attendance.DateLayout),
		RangeLabel:   formatRangeLabel(start, end),
		PreviousDate: reference.AddDate(0, 0, -7).Format(attendance.DateLayout),
		NextDate:     reference.AddDate(0, 0, 7).Format(attendance.DateLayout),
		Days:         make([]attendance.WeekDayResponse, 0, len(days)),
	}
	for _, day := range days {
		result.Days = append(result.Days, attendance.WeekDayResponse{
			DayRecord:   day,
			TableStatus: TableStatus(day, now),
		})
	}

	return result, nil
}

// GetMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonth(ctx context.Context, req attendance.MonthRequest) (attendance.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthResponse{}, err
	}

	now := s.evaluationInstant()
	month := calendarDate(now)
	if req.Month != "" {
		parsed, err := time.Parse("2006-01", req.Month)
		if err != nil {
			return attendance.MonthResponse{}, fmt.Errorf("%w: %q", attendance.ErrInvalidReferenceDate, req.Month)
		}
		month = parsed
	}

	first, last := MonthBounds(month)
	lookup, err := s.AttendanceRepository.Lookup(ctx, attendance.LookupFilter{
		EmployeeID: req.EmployeeID,
		From:       first,
		To:         last,
	})
	if err != nil {
		return attendance.MonthResponse{}, fmt.Errorf("failed to look up attendance: %w", err)
	}

	cells, err := s.builder.BuildMonth(first, lookup, now)
	if err != nil {
		return attendance.MonthResponse{}, err
	}

	return attendance.MonthResponse{
		EmployeeID: req.EmployeeID,
		Month:      first.Format("2006-01"),
		MonthLabel: first.Format("January 2006"),
		Cells:      cells,
	}, nil
}

// GetSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	mode := attendance.SummaryMode(req.Mode)
	if mode == "" {
		mode = attendance.ModeDays
	}

	now := s.evaluationInstant()
	reference, err := referenceDate(req.Date, now)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	start := WeekStart(reference)
	end := start.AddDate(0, 0, 6)
	filter := attendance.LookupFilter{
		EmployeeID: req.EmployeeID,
		From:       start,
		To:         end,
	}

	lookup, err := s.AttendanceRepository.Lookup(ctx, filter)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to look up attendance: %w", err)
	}

	days, err := s.builder.BuildWeek(reference, lookup, now)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	statuses, err := s.AttendanceRepository.DayStatuses(ctx, filter)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to get day statuses: %w", err)
	}

	counts, err := Scale(Summarize(CategorizeWeek(days, statuses)), mode, s.hoursPerDay)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return attendance.SummaryResponse{
		EmployeeID: req.EmployeeID,
		StartDate:  start.Format(attendance.DateLayout),
		EndDate:    end.Format(attendance.DateLayout),
		Mode:       mode,
		Unit:       unitFor(mode),
		Counts:     counts,
	}, nil
}

// GetDashboard implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDashboard(ctx context.Context, req attendance.WeekRequest) (attendance.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DashboardResponse{}, err
	}

	var (
		week    attendance.WeekResponse
		summary attendance.SummaryResponse
		checkIn attendance.CheckInResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Week records
	g.Go(func() error {
		var err error
		week, err = s.GetWeek(gCtx, req)
		return err
	})

	// 2. Payable-day summary
	g.Go(func() error {
		var err error
		summary, err = s.GetSummary(gCtx, attendance.SummaryRequest{
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			Mode:       string(attendance.ModeDays),
		})
		return err
	})

	// 3. Check-in control
	g.Go(func() error {
		var err error
		checkIn, err = s.GetCheckIn(gCtx, req.EmployeeID)
		return err
	})

	if err := g.Wait(); err != nil {
		return attendance.DashboardResponse{}, err
	}

	return attendance.DashboardResponse{
		Week:    week,
		Summary: summary,
		CheckIn: checkIn,
	}, nil
}

// ToggleCheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ToggleCheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := s.evaluationInstant()
	session, err := s.checkIns.Toggle(req.EmployeeID, req.Note, now)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	slog.Info("Check-in toggled",
		"employee_id", req.EmployeeID,
		"session_id", session.ID,
		"checked_in", session.CheckedIn,
	)

	return s.checkInResponse(session, now), nil
}

// GetCheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCheckIn(ctx context.Context, employeeID string) (attendance.CheckInResponse, error) {
	req := attendance.CheckInRequest{EmployeeID: employeeID}
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	session, ok := s.checkIns.Current(employeeID)
	if !ok {
		return attendance.CheckInResponse{
			EmployeeID: employeeID,
			Elapsed:    formatElapsed(0),
		}, nil
	}

	return s.checkInResponse(session, s.evaluationInstant()), nil
}

func (s *AttendanceServiceImpl) checkInResponse(session attendance.CheckInSession, now time.Time) attendance.CheckInResponse {
	checkInTime := session.CheckInTime.In(s.location).Format("15:04:05")
	resp := attendance.CheckInResponse{
		ID:          session.ID,
		EmployeeID:  session.EmployeeID,
		CheckedIn:   session.CheckedIn,
		CheckInTime: &checkInTime,
		Note:        session.Note,
		Elapsed:     Elapsed(session, now),
	}
	if session.CheckOutTime != nil {
		checkOutTime := session.CheckOutTime.In(s.location).Format("15:04:05")
		resp.CheckOutTime = &checkOutTime
	}
	return resp
}

// SubscribeCheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SubscribeCheckIn(ctx context.Context, employeeID string) (<-chan attendance.CheckInEvent, func(), error) {
	req := attendance.CheckInRequest{EmployeeID: employeeID}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	ch, cleanup := s.events.Subscribe(employeeID)
	out := make(chan attendance.CheckInEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(attendance.CheckInResponse)
				if !ok {
					continue
				}
				select {
				case out <- attendance.CheckInEvent{Event: event.Name, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup, nil
}

// ExportWeek implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportWeek(ctx context.Context, req attendance.WeekRequest) ([]byte, error) {
	week, err := s.GetWeek(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := export.WeekWorkbook(week)
	if err != nil {
		return nil, fmt.Errorf("failed to export week: %w", err)
	}
	return data, nil
}
