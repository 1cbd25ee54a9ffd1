package usecase

import (
	"context"
	"time"

	"slot-hold-gateway/internal/domain/schedule"

	"github.com/google/uuid"
)

// Selection is the set of inputs that define a candidate hold. Any change to
// one of them invalidates an existing lease unconditionally.
type Selection struct {
	DoctorID        uuid.UUID
	ServiceID       uuid.UUID
	ServiceDuration time.Duration
	Date            string // DateLayout, interpreted in the fixed VN zone
	AppointmentFor  string
}

// Complete reports whether doctor, service, duration, and date are all set,
// the precondition for availability polling and hold acquisition.
func (s Selection) Complete() bool {
	return s.DoctorID != uuid.Nil && s.ServiceID != uuid.Nil && s.ServiceDuration > 0 && s.Date != ""
}

type ValidateTimeInput struct {
	DoctorID  uuid.UUID
	ServiceID uuid.UUID
	Date      string
	StartTime time.Time
}

type ValidateTimeResult struct {
	EndTime time.Time
}

type ReserveSlotInput struct {
	DoctorUserID     uuid.UUID
	ServiceID        uuid.UUID
	DoctorScheduleID string
	Date             string
	StartTime        time.Time
	AppointmentFor   string
}

// ReservedSlot mirrors the backend's reserve response. ExpiresAt is used
// verbatim as the lease expiry.
type ReservedSlot struct {
	TimeslotID       string
	StartTime        time.Time
	EndTime          time.Time
	ExpiresAt        time.Time
	DoctorScheduleID string
}

type ScheduleQuery struct {
	DoctorID       uuid.UUID
	ServiceID      uuid.UUID
	Date           string
	AppointmentFor string
}

// SlotService is the booking backend as seen by the coordinator. All durable
// reservation state lives behind it.
type SlotService interface {
	ValidateTime(ctx context.Context, in ValidateTimeInput) (*ValidateTimeResult, error)
	ReserveSlot(ctx context.Context, in ReserveSlotInput) (*ReservedSlot, error)
	ReleaseSlot(ctx context.Context, timeslotID string) error
	GetScheduleRange(ctx context.Context, q ScheduleQuery) (*schedule.Snapshot, error)
}
