package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// clockTime is an hour:minute reading taken from a lookup entry. Seconds are ignored.
type clockTime struct {
	hour   int
	minute int
}

func parseClock(s string) (clockTime, error) {
	if !validator.IsValidClockTime(s) {
		return clockTime{}, fmt.Errorf("%w: %q", attendance.ErrInvalidTimeFormat, s)
	}

	parts := strings.Split(s, ":")
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clockTime{}, fmt.Errorf("%w: %q", attendance.ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return clockTime{}, fmt.Errorf("%w: %q", attendance.ErrInvalidTimeFormat, s)
	}

	return clockTime{hour: hour, minute: minute}, nil
}

func (c clockTime) before(other clockTime) bool {
	if c.hour != other.hour {
		return c.hour < other.hour
	}
	return c.minute < other.minute
}

// formatHHMM zero-pads both components to two digits.
func formatHHMM(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// formatElapsed formats a duration as HH:MM:SS, clamping negatives to zero.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// calendarDate drops the clock and zone of t, keeping its local calendar day.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
