package request

import (
	"time"

	"slot-hold-gateway/internal/usecase"

	"github.com/google/uuid"
)

type CreateWorkflowRequest struct {
	DoctorID           uuid.UUID `json:"doctorId" binding:"required"`
	ServiceID          uuid.UUID `json:"serviceId" binding:"required"`
	ServiceDurationMin int       `json:"serviceDurationMin" binding:"required,min=1"`
	Date               string    `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	AppointmentFor     string    `json:"appointmentFor,omitempty"`
}

func (r CreateWorkflowRequest) ToSelection() usecase.Selection {
	return usecase.Selection{
		DoctorID:        r.DoctorID,
		ServiceID:       r.ServiceID,
		ServiceDuration: time.Duration(r.ServiceDurationMin) * time.Minute,
		Date:            r.Date,
		AppointmentFor:  r.AppointmentFor,
	}
}

// UpdateSelectionRequest patches the selection; omitted fields keep their
// value. Sending "date": "" clears the date and stops availability polling.
type UpdateSelectionRequest struct {
	DoctorID           *uuid.UUID `json:"doctorId"`
	ServiceID          *uuid.UUID `json:"serviceId"`
	ServiceDurationMin *int       `json:"serviceDurationMin" binding:"omitempty,min=1"`
	Date               *string    `json:"date" binding:"omitempty,datetime=2006-01-02"`
	AppointmentFor     *string    `json:"appointmentFor"`
}

func (r UpdateSelectionRequest) ToPatch() usecase.SelectionPatch {
	patch := usecase.SelectionPatch{
		DoctorID:       r.DoctorID,
		ServiceID:      r.ServiceID,
		Date:           r.Date,
		AppointmentFor: r.AppointmentFor,
	}
	if r.ServiceDurationMin != nil {
		d := time.Duration(*r.ServiceDurationMin) * time.Minute
		patch.ServiceDuration = &d
	}
	return patch
}

type AcquireHoldRequest struct {
	Time string `json:"time" binding:"required"`
}
