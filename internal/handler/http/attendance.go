package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	ExportWeek(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetCheckIn(w http.ResponseWriter, r *http.Request)
	ToggleCheckIn(w http.ResponseWriter, r *http.Request)
	StreamCheckIn(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func weekRequest(r *http.Request) attendance.WeekRequest {
	return attendance.WeekRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       r.URL.Query().Get("date"),
	}
}

// GetWeek implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetWeek(r.Context(), weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportWeek implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportWeek(w http.ResponseWriter, r *http.Request) {
	req := weekRequest(r)

	data, err := h.attendanceService.ExportWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s", req.EmployeeID)
	if req.Date != "" {
		filename += "-" + req.Date
	}
	response.Attachment(w, xlsxContentType, filename+".xlsx", data)
}

// GetMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	req := attendance.MonthRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      r.URL.Query().Get("month"),
	}

	result, err := h.attendanceService.GetMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.SummaryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       query.Get("date"),
		Mode:       query.Get("mode"),
	}

	result, err := h.attendanceService.GetSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDashboard implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetDashboard(r.Context(), weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetCheckIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetCheckIn(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ToggleCheckIn implements AttendanceHandler.
// The body is optional; an empty body toggles without a note.
func (h *attendanceHandlerImpl) ToggleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.ToggleCheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Checked out"
	if result.CheckedIn {
		message = "Checked in"
	}
	response.SuccessWithMessage(w, message, result)
}

// StreamCheckIn implements AttendanceHandler.
// It pushes the current state first, then every change as a server-sent event.
func (h *attendanceHandlerImpl) StreamCheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	current, err := h.attendanceService.GetCheckIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	events, cleanup, err := h.attendanceService.SubscribeCheckIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer cleanup()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	writeEvent(w, "connected", current)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			writeEvent(w, event.Event, event.Data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w io.Writer, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode event", "event", name, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}
