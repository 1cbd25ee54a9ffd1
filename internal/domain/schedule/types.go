package schedule

import "time"

// AvailableGap is a free sub-interval of a shift not yet consumed by a
// booking or hold. Times are UTC.
type AvailableGap struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether [start, end) lies strictly inside the gap.
// Partial overlap does not count.
func (g AvailableGap) Contains(start, end time.Time) bool {
	return !start.Before(g.Start) && !end.After(g.End)
}

// Overlaps reports whether [start, end) intersects the gap at all.
func (g AvailableGap) Overlaps(start, end time.Time) bool {
	return start.Before(g.End) && end.After(g.Start)
}

// ScheduleRange is one named working shift of a doctor on a given date,
// together with the free gaps remaining inside it.
type ScheduleRange struct {
	ID               string
	Label            string
	Start            time.Time
	End              time.Time
	Exhausted        bool
	PastWorkingHours bool
	Gaps             []AvailableGap
}

// Usable reports whether the shift can still host a candidate window.
func (r ScheduleRange) Usable() bool {
	return !r.Exhausted && !r.PastWorkingHours
}

// Overlaps reports whether [start, end) intersects the shift's working period.
func (r ScheduleRange) Overlaps(start, end time.Time) bool {
	return start.Before(r.End) && end.After(r.Start)
}

// Snapshot is one full availability response for a doctor+service+date.
// Loads always replace the previous snapshot wholesale; partial merges are
// never performed.
type Snapshot struct {
	DoctorScheduleID string
	Ranges           []ScheduleRange
	FetchedAt        time.Time
}
