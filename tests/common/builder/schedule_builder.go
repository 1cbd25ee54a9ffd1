//go:build unit

package builder

import (
	"fmt"
	"time"

	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/usecase"

	"github.com/google/uuid"
)

// ScheduleDate is the fixed date all schedule fixtures are built on.
const ScheduleDate = "2026-09-01"

// VNTime returns the UTC instant for an "HH:MM" wall-clock time on
// ScheduleDate in the fixed VN zone.
func VNTime(clock string) time.Time {
	hour, minute, err := schedule.ParseClock(clock)
	if err != nil {
		panic(fmt.Sprintf("bad fixture time %q: %v", clock, err))
	}
	t, err := schedule.LocalDateTime(ScheduleDate, hour, minute)
	if err != nil {
		panic(fmt.Sprintf("bad fixture date %q: %v", ScheduleDate, err))
	}
	return t
}

type ScheduleBuilder struct {
	doctorScheduleID string
	ranges           []schedule.ScheduleRange
}

func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{doctorScheduleID: "sched-20260901"}
}

func (b *ScheduleBuilder) WithDoctorScheduleID(id string) *ScheduleBuilder {
	b.doctorScheduleID = id
	return b
}

// WithShift adds a usable shift whose free gaps are given as "HH:MM" pairs.
// With no explicit gaps the whole shift is free.
func (b *ScheduleBuilder) WithShift(id, label, start, end string, gaps ...[2]string) *ScheduleBuilder {
	r := schedule.ScheduleRange{
		ID:    id,
		Label: label,
		Start: VNTime(start),
		End:   VNTime(end),
	}
	if len(gaps) == 0 {
		gaps = [][2]string{{start, end}}
	}
	for _, g := range gaps {
		r.Gaps = append(r.Gaps, schedule.AvailableGap{Start: VNTime(g[0]), End: VNTime(g[1])})
	}
	b.ranges = append(b.ranges, r)
	return b
}

func (b *ScheduleBuilder) WithExhaustedShift(id, label, start, end string) *ScheduleBuilder {
	b.ranges = append(b.ranges, schedule.ScheduleRange{
		ID:        id,
		Label:     label,
		Start:     VNTime(start),
		End:       VNTime(end),
		Exhausted: true,
	})
	return b
}

func (b *ScheduleBuilder) BuildSnapshot() *schedule.Snapshot {
	return &schedule.Snapshot{
		DoctorScheduleID: b.doctorScheduleID,
		Ranges:           b.ranges,
	}
}

// BuildSelection returns a complete selection targeting ScheduleDate.
func BuildSelection(duration time.Duration) usecase.Selection {
	return usecase.Selection{
		DoctorID:        uuid.New(),
		ServiceID:       uuid.New(),
		ServiceDuration: duration,
		Date:            ScheduleDate,
		AppointmentFor:  "self",
	}
}
