package schedule

import (
	"errors"
	"time"
)

var (
	ErrPastTime            = errors.New("time is already past")
	ErrOutsideWorkingHours = errors.New("time is outside working hours")
	ErrInsufficientWindow  = errors.New("not enough remaining time for the service")
)

// Window is a validated candidate interval together with the shift it sits in.
type Window struct {
	Start   time.Time
	End     time.Time
	ShiftID string
}

// ValidateWindow checks a user-entered "HH:MM" candidate against the current
// availability snapshot, entirely locally. The candidate is interpreted on
// date in the fixed VN zone; end is start plus the service duration.
//
// The full [start, end) interval must lie strictly inside a single gap of a
// usable shift; an interval spanning two gaps or overrunning a shift boundary
// never matches. When no gap contains it, the failure distinguishes a time the
// schedule does not cover at all (ErrOutsideWorkingHours) from a time that
// falls inside a shift without room for the full duration
// (ErrInsufficientWindow).
func ValidateWindow(candidate, date string, ranges []ScheduleRange, duration time.Duration, now time.Time) (Window, error) {
	hour, minute, err := ParseClock(candidate)
	if err != nil {
		return Window{}, err
	}

	start, err := LocalDateTime(date, hour, minute)
	if err != nil {
		return Window{}, err
	}
	end := start.Add(duration)

	// Past-time rule applies regardless of gap containment.
	if !start.After(now) {
		return Window{}, ErrPastTime
	}

	touchesShift := false
	for _, r := range ranges {
		if !r.Usable() {
			continue
		}
		if r.Overlaps(start, end) {
			touchesShift = true
		}
		for _, g := range r.Gaps {
			if g.Contains(start, end) {
				return Window{Start: start, End: end, ShiftID: r.ID}, nil
			}
			if g.Overlaps(start, end) {
				touchesShift = true
			}
		}
	}

	if touchesShift {
		return Window{}, ErrInsufficientWindow
	}
	return Window{}, ErrOutsideWorkingHours
}
