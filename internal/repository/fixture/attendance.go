// Package fixture serves attendance lookups from a YAML file, for demos and
// local development without a database.
package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout: employee id, then ISO date, then the record.
//
//	employees:
//	  emp-001:
//	    "2024-11-11": {check_in: "09:00", check_out: "18:12", status: present}
//	    "2024-11-13": {status: leave}
type File struct {
	Employees map[string]map[string]attendance.AttendanceRecord `yaml:"employees"`
}

// AttendanceRepository implements attendance.AttendanceRepository over a YAML file.
type AttendanceRepository struct {
	path string

	mu        sync.RWMutex
	employees map[string]map[string]attendance.AttendanceRecord
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)

// NewAttendanceRepository loads path once and returns the repository.
func NewAttendanceRepository(path string) (*AttendanceRepository, error) {
	repo := &AttendanceRepository{path: path}
	if err := repo.Reload(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// Reload re-reads the file. On failure the previously loaded data stays in place.
func (r *AttendanceRepository) Reload(ctx context.Context) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("%w: read fixture: %w", attendance.ErrSourceUnavailable, err)
	}

	employees, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parse fixture %s: %w", r.path, err)
	}

	r.mu.Lock()
	r.employees = employees
	r.mu.Unlock()

	slog.Debug("Attendance fixture loaded", "path", r.path, "employees", len(employees))
	return nil
}

// Parse decodes a fixture document and rejects keys that are not ISO dates.
func Parse(data []byte) (map[string]map[string]attendance.AttendanceRecord, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	for employeeID, days := range file.Employees {
		for date := range days {
			if _, err := time.Parse(attendance.DateLayout, date); err != nil {
				return nil, fmt.Errorf("employee %s: invalid date key %q", employeeID, date)
			}
		}
	}

	if file.Employees == nil {
		file.Employees = make(map[string]map[string]attendance.AttendanceRecord)
	}
	return file.Employees, nil
}

// Lookup implements attendance.AttendanceRepository.
// Days without a check-in (leave, holidays) are left out so they read as absent.
func (r *AttendanceRepository) Lookup(ctx context.Context, filter attendance.LookupFilter) (map[string]attendance.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lookup := make(map[string]attendance.AttendanceRecord)
	for date, record := range r.employees[filter.EmployeeID] {
		if record.CheckIn == "" || !inRange(date, filter) {
			continue
		}
		lookup[date] = record
	}
	return lookup, nil
}

// DayStatuses implements attendance.AttendanceRepository.
func (r *AttendanceRepository) DayStatuses(ctx context.Context, filter attendance.LookupFilter) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[string]string)
	for date, record := range r.employees[filter.EmployeeID] {
		if record.Status == "" || !inRange(date, filter) {
			continue
		}
		statuses[date] = record.Status
	}
	return statuses, nil
}

// inRange compares ISO dates lexically, which matches chronological order.
func inRange(date string, filter attendance.LookupFilter) bool {
	return date >= filter.From.Format(attendance.DateLayout) &&
		date <= filter.To.Format(attendance.DateLayout)
}
