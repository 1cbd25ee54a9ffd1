package schedule

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Zone is the fixed UTC+7 offset all candidate times are interpreted in.
// The booking contract pins this offset; the target locale has no daylight
// saving, so no tz database lookup is involved.
var Zone = time.FixedZone("ICT", 7*60*60)

const DateLayout = "2006-01-02"

var (
	ErrMalformedTime    = errors.New("time must be in HH:MM format")
	ErrHourOutOfRange   = errors.New("hour must be between 0 and 23")
	ErrMinuteOutOfRange = errors.New("minute must be between 0 and 59")
	ErrInvalidDate      = errors.New("invalid date")
)

var clockPattern = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// ParseClock parses a user-entered "HH:MM" string. Shape, hour range, and
// minute range each fail with their own sentinel so callers can report them
// distinctly.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, ErrMalformedTime
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 0 || hour > 23 {
		return 0, 0, ErrHourOutOfRange
	}
	if minute < 0 || minute > 59 {
		return 0, 0, ErrMinuteOutOfRange
	}
	return hour, minute, nil
}

// LocalDateTime combines a "2006-01-02" date with a wall-clock hour/minute in
// the fixed VN zone and returns the instant in UTC.
func LocalDateTime(date string, hour, minute int) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, Zone)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	local := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, Zone)
	return local.UTC(), nil
}

// ClockString renders an instant as "HH:MM" wall-clock time in the fixed VN
// zone, the format users type candidates in.
func ClockString(t time.Time) string {
	return t.In(Zone).Format("15:04")
}
