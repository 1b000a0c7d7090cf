package attendance

import (
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/google/uuid"
)

// CheckInTracker keeps the manual check-in/check-out state per employee in memory.
type CheckInTracker struct {
	mu        sync.Mutex
	sessions  map[string]attendance.CheckInSession
	newID     func() (uuid.UUID, error)
	listeners []func(attendance.CheckInSession)
}

// NewCheckInTracker creates an empty tracker
func NewCheckInTracker() *CheckInTracker {
	return &CheckInTracker{
		sessions: make(map[string]attendance.CheckInSession),
		newID:    uuid.NewV7,
	}
}

// OnChange registers fn to be called after every session change. Listeners
// run on the caller's goroutine, outside the tracker lock.
func (t *CheckInTracker) OnChange(fn func(attendance.CheckInSession)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

func (t *CheckInTracker) notify(sessions []attendance.CheckInSession) {
	t.mu.Lock()
	listeners := t.listeners
	t.mu.Unlock()

	for _, session := range sessions {
		for _, fn := range listeners {
			fn(session)
		}
	}
}

// Toggle checks the employee in when no session is open, otherwise checks them out.
func (t *CheckInTracker) Toggle(employeeID, note string, now time.Time) (attendance.CheckInSession, error) {
	session, err := t.toggle(employeeID, note, now)
	if err != nil {
		return attendance.CheckInSession{}, err
	}
	t.notify([]attendance.CheckInSession{session})
	return session, nil
}

func (t *CheckInTracker) toggle(employeeID, note string, now time.Time) (attendance.CheckInSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok := t.sessions[employeeID]
	if ok && session.CheckedIn {
		checkOut := now
		session.CheckedIn = false
		session.CheckOutTime = &checkOut
		if note != "" {
			session.Note = note
		}
		t.sessions[employeeID] = session
		return session, nil
	}

	id, err := t.newID()
	if err != nil {
		return attendance.CheckInSession{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	session = attendance.CheckInSession{
		ID:          id.String(),
		EmployeeID:  employeeID,
		CheckedIn:   true,
		CheckInTime: now,
		Note:        note,
	}
	t.sessions[employeeID] = session
	return session, nil
}

// Current returns the latest session of the employee, if any.
func (t *CheckInTracker) Current(employeeID string) (attendance.CheckInSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok := t.sessions[employeeID]
	return session, ok
}

// CloseStale checks out every session opened before cutoff, stamping cutoff
// as the check-out time. It returns how many sessions were closed.
func (t *CheckInTracker) CloseStale(cutoff time.Time) int {
	t.mu.Lock()
	var closed []attendance.CheckInSession
	for employeeID, session := range t.sessions {
		if !session.CheckedIn || !session.CheckInTime.Before(cutoff) {
			continue
		}
		checkOut := cutoff
		session.CheckedIn = false
		session.CheckOutTime = &checkOut
		t.sessions[employeeID] = session
		closed = append(closed, session)
	}
	t.mu.Unlock()

	t.notify(closed)
	return len(closed)
}

// Elapsed is the running time of an open session, or the worked span of a closed one.
func Elapsed(session attendance.CheckInSession, now time.Time) string {
	if session.CheckInTime.IsZero() {
		return formatElapsed(0)
	}
	if session.CheckedIn || session.CheckOutTime == nil {
		return formatElapsed(now.Sub(session.CheckInTime))
	}
	return formatElapsed(session.CheckOutTime.Sub(session.CheckInTime))
}
