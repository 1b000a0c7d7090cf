package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReloader struct {
	calls atomic.Int32
	err   error
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

type fakeSessions struct {
	cutoffs []time.Time
}

func (f *fakeSessions) CloseStale(cutoff time.Time) int {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 2
}

func TestScheduler_RunOnce(t *testing.T) {
	scheduler := NewScheduler()
	var order []string

	scheduler.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	scheduler.AddJob("second", time.Hour, func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestScheduler_StartStop(t *testing.T) {
	scheduler := NewScheduler()
	var runs atomic.Int32
	ran := make(chan struct{}, 1)

	scheduler.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
	scheduler.Stop()

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}

func TestAttendanceJobs_RegisterJobs(t *testing.T) {
	reloader := &fakeReloader{}
	sessions := &fakeSessions{}

	withFixture := NewScheduler()
	NewAttendanceJobs(reloader, sessions, time.Minute, time.UTC).RegisterJobs(withFixture)
	require.Len(t, withFixture.jobs, 2)
	assert.Equal(t, "reload_attendance_fixture", withFixture.jobs[0].Name)
	assert.Equal(t, time.Minute, withFixture.jobs[0].Interval)

	withFixture.RunOnce(context.Background())
	assert.Equal(t, int32(1), reloader.calls.Load())
	assert.Len(t, sessions.cutoffs, 1)

	withoutFixture := NewScheduler()
	NewAttendanceJobs(nil, sessions, time.Minute, nil).RegisterJobs(withoutFixture)
	require.Len(t, withoutFixture.jobs, 1)
	assert.Equal(t, "auto_close_stale_check_ins", withoutFixture.jobs[0].Name)
}

func TestAttendanceJobs_AutoCloseStaleCheckIns(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	sessions := &fakeSessions{}
	jobs := NewAttendanceJobs(nil, sessions, time.Minute, jakarta)
	// 2024-11-13 20:30 UTC is already 14 Nov in WIB.
	jobs.now = func() time.Time { return time.Date(2024, 11, 13, 20, 30, 0, 0, time.UTC) }

	require.NoError(t, jobs.AutoCloseStaleCheckIns(context.Background()))
	require.Len(t, sessions.cutoffs, 1)
	assert.True(t, time.Date(2024, 11, 14, 0, 0, 0, 0, jakarta).Equal(sessions.cutoffs[0]))
}
