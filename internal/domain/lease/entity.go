package lease

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotActive = errors.New("lease is not active")

// Lease is a TTL-bound hold on one doctor/time-slot, created only by a
// successful remote reserve call. expiresAt comes from the server verbatim;
// the client never invents or adjusts it.
type Lease struct {
	timeslotID       string
	doctorID         uuid.UUID
	serviceID        uuid.UUID
	doctorScheduleID string
	date             string
	start            time.Time
	end              time.Time
	expiresAt        time.Time
	status           Status
}

func NewLease(
	timeslotID string,
	doctorID, serviceID uuid.UUID,
	doctorScheduleID, date string,
	start, end, expiresAt time.Time,
) *Lease {
	return &Lease{
		timeslotID:       timeslotID,
		doctorID:         doctorID,
		serviceID:        serviceID,
		doctorScheduleID: doctorScheduleID,
		date:             date,
		start:            start,
		end:              end,
		expiresAt:        expiresAt,
		status:           StatusActive,
	}
}

// Remaining is the countdown value re-derived from the absolute expiry; it is
// never decremented locally.
func (l *Lease) Remaining(now time.Time) time.Duration {
	return l.expiresAt.Sub(now)
}

func (l *Lease) ExpiredAt(now time.Time) bool {
	return l.Remaining(now) <= 0
}

func (l *Lease) Expire() error {
	return l.transition(StatusExpired)
}

func (l *Lease) Release() error {
	return l.transition(StatusReleased)
}

func (l *Lease) Supersede() error {
	return l.transition(StatusSuperseded)
}

func (l *Lease) transition(to Status) error {
	if l.status != StatusActive {
		return ErrNotActive
	}
	l.status = to
	return nil
}

func (l *Lease) TimeslotID() string       { return l.timeslotID }
func (l *Lease) DoctorID() uuid.UUID      { return l.doctorID }
func (l *Lease) ServiceID() uuid.UUID     { return l.serviceID }
func (l *Lease) DoctorScheduleID() string { return l.doctorScheduleID }
func (l *Lease) Date() string             { return l.date }
func (l *Lease) Start() time.Time         { return l.start }
func (l *Lease) End() time.Time           { return l.end }
func (l *Lease) ExpiresAt() time.Time     { return l.expiresAt }
func (l *Lease) Status() Status           { return l.status }
