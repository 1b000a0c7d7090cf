package cron

import (
	"context"
	"log/slog"
	"time"
)

// FixtureReloader re-reads a file-backed attendance source.
type FixtureReloader interface {
	Reload(ctx context.Context) error
}

// StaleSessionCloser closes check-in sessions opened before a cutoff.
type StaleSessionCloser interface {
	CloseStale(cutoff time.Time) int
}

type AttendanceJobs struct {
	fixture        FixtureReloader
	sessions       StaleSessionCloser
	reloadInterval time.Duration
	location       *time.Location
	now            func() time.Time
}

// NewAttendanceJobs wires the attendance jobs. fixture may be nil when the
// lookup source is PostgreSQL.
func NewAttendanceJobs(
	fixture FixtureReloader,
	sessions StaleSessionCloser,
	reloadInterval time.Duration,
	location *time.Location,
) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		fixture:        fixture,
		sessions:       sessions,
		reloadInterval: reloadInterval,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	if j.fixture != nil {
		scheduler.AddJob("reload_attendance_fixture", j.reloadInterval, j.ReloadFixture)
	}
	scheduler.AddJob("auto_close_stale_check_ins", 15*time.Minute, j.AutoCloseStaleCheckIns)
}

func (j *AttendanceJobs) ReloadFixture(ctx context.Context) error {
	return j.fixture.Reload(ctx)
}

// AutoCloseStaleCheckIns closes sessions left open from a previous calendar
// day, checking them out at local midnight.
func (j *AttendanceJobs) AutoCloseStaleCheckIns(ctx context.Context) error {
	now := j.now().In(j.location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.location)

	if closed := j.sessions.CloseStale(midnight); closed > 0 {
		slog.Info("Cron: auto-closed stale check-ins", "count", closed, "cutoff", midnight)
	}
	return nil
}
