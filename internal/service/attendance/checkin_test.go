package attendance

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInTracker_Toggle(t *testing.T) {
	tracker := NewCheckInTracker()
	checkIn := time.Date(2024, 11, 13, 8, 55, 0, 0, time.UTC)
	checkOut := checkIn.Add(9*time.Hour + 5*time.Minute + 30*time.Second)

	_, ok := tracker.Current("emp-1")
	assert.False(t, ok)

	opened, err := tracker.Toggle("emp-1", "morning", checkIn)
	require.NoError(t, err)
	assert.True(t, opened.CheckedIn)
	assert.Equal(t, checkIn, opened.CheckInTime)
	assert.Nil(t, opened.CheckOutTime)
	assert.Equal(t, "morning", opened.Note)

	id, err := uuid.Parse(opened.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	assert.Equal(t, "01:00:00", Elapsed(opened, checkIn.Add(time.Hour)))

	closed, err := tracker.Toggle("emp-1", "", checkOut)
	require.NoError(t, err)
	assert.False(t, closed.CheckedIn)
	assert.Equal(t, opened.ID, closed.ID)
	require.NotNil(t, closed.CheckOutTime)
	assert.Equal(t, checkOut, *closed.CheckOutTime)
	assert.Equal(t, "morning", closed.Note)
	assert.Equal(t, "09:05:30", Elapsed(closed, checkOut.Add(3*time.Hour)))

	reopened, err := tracker.Toggle("emp-1", "", checkOut.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, reopened.CheckedIn)
	assert.NotEqual(t, opened.ID, reopened.ID)
	assert.Nil(t, reopened.CheckOutTime)
}

func TestCheckInTracker_EmployeesAreIndependent(t *testing.T) {
	tracker := NewCheckInTracker()
	now := time.Date(2024, 11, 13, 9, 0, 0, 0, time.UTC)

	_, err := tracker.Toggle("emp-1", "", now)
	require.NoError(t, err)

	_, ok := tracker.Current("emp-2")
	assert.False(t, ok)

	session, ok := tracker.Current("emp-1")
	assert.True(t, ok)
	assert.True(t, session.CheckedIn)
}

func TestCheckInTracker_IDFailure(t *testing.T) {
	tracker := NewCheckInTracker()
	tracker.newID = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("entropy exhausted")
	}

	_, err := tracker.Toggle("emp-1", "", time.Now())
	assert.Error(t, err)

	_, ok := tracker.Current("emp-1")
	assert.False(t, ok)
}

func TestCheckInTracker_ConcurrentToggles(t *testing.T) {
	tracker := NewCheckInTracker()
	now := time.Date(2024, 11, 13, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = tracker.Toggle("emp-1", "", now)
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the employee checked out.
	session, ok := tracker.Current("emp-1")
	require.True(t, ok)
	assert.False(t, session.CheckedIn)
}

func TestElapsed(t *testing.T) {
	now := time.Date(2024, 11, 13, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "00:00:00", Elapsed(attendance.CheckInSession{}, now))
	assert.Equal(t, "00:00:00", Elapsed(attendance.CheckInSession{
		CheckedIn:   true,
		CheckInTime: now.Add(time.Minute),
	}, now))
	assert.Equal(t, "26:03:04", Elapsed(attendance.CheckInSession{
		CheckedIn:   true,
		CheckInTime: now.Add(-(26*time.Hour + 3*time.Minute + 4*time.Second)),
	}, now))
}

func TestCheckInTracker_CloseStale(t *testing.T) {
	tracker := NewCheckInTracker()
	midnight := time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)

	_, err := tracker.Toggle("emp-1", "", midnight.Add(-10*time.Hour))
	require.NoError(t, err)
	_, err = tracker.Toggle("emp-2", "", midnight.Add(30*time.Minute))
	require.NoError(t, err)
	_, err = tracker.Toggle("emp-3", "", midnight.Add(-12*time.Hour))
	require.NoError(t, err)
	_, err = tracker.Toggle("emp-3", "", midnight.Add(-3*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, tracker.CloseStale(midnight))

	stale, _ := tracker.Current("emp-1")
	assert.False(t, stale.CheckedIn)
	require.NotNil(t, stale.CheckOutTime)
	assert.Equal(t, midnight, *stale.CheckOutTime)

	fresh, _ := tracker.Current("emp-2")
	assert.True(t, fresh.CheckedIn)

	done, _ := tracker.Current("emp-3")
	assert.Equal(t, midnight.Add(-3*time.Hour), *done.CheckOutTime)

	assert.Zero(t, tracker.CloseStale(midnight))
}

func TestCheckInTracker_OnChange(t *testing.T) {
	tracker := NewCheckInTracker()
	var seen []attendance.CheckInSession
	tracker.OnChange(func(s attendance.CheckInSession) {
		// Listeners may read the tracker without deadlocking.
		_, _ = tracker.Current(s.EmployeeID)
		seen = append(seen, s)
	})

	now := time.Date(2024, 11, 13, 9, 0, 0, 0, time.UTC)
	_, err := tracker.Toggle("emp-1", "", now)
	require.NoError(t, err)
	tracker.CloseStale(now.Add(time.Hour))

	require.Len(t, seen, 2)
	assert.True(t, seen[0].CheckedIn)
	assert.False(t, seen[1].CheckedIn)

	tracker.newID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no id") }
	_, err = tracker.Toggle("emp-2", "", now)
	require.Error(t, err)
	assert.Len(t, seen, 2)
}
