package response

import (
	"time"

	"slot-hold-gateway/internal/domain/lease"
	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/usecase"

	"github.com/google/uuid"
)

type WorkflowResponse struct {
	WorkflowID        uuid.UUID         `json:"workflowId"`
	Selection         SelectionResponse `json:"selection"`
	Hold              *HoldResponse     `json:"hold,omitempty"`
	LastEvent         *EventResponse    `json:"lastEvent,omitempty"`
	Polling           bool              `json:"polling"`
	ScheduleFetchedAt *time.Time        `json:"scheduleFetchedAt,omitempty"`
}

type SelectionResponse struct {
	DoctorID           uuid.UUID `json:"doctorId"`
	ServiceID          uuid.UUID `json:"serviceId"`
	ServiceDurationMin int       `json:"serviceDurationMin"`
	Date               string    `json:"date,omitempty"`
	AppointmentFor     string    `json:"appointmentFor,omitempty"`
}

type HoldResponse struct {
	TimeslotID       string    `json:"timeslotId"`
	DoctorScheduleID string    `json:"doctorScheduleId"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	StartClock       string    `json:"startClock"`
	EndClock         string    `json:"endClock"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RemainingSeconds int       `json:"remainingSeconds"`
	Status           string    `json:"status"`
}

type EventResponse struct {
	Type    string    `json:"type"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

type ScheduleResponse struct {
	DoctorScheduleID string                  `json:"doctorScheduleId"`
	FetchedAt        time.Time               `json:"fetchedAt"`
	ScheduleRanges   []ScheduleRangeResponse `json:"scheduleRanges"`
}

type ScheduleRangeResponse struct {
	ID                 string        `json:"id"`
	Label              string        `json:"label"`
	StartTime          time.Time     `json:"startTime"`
	EndTime            time.Time     `json:"endTime"`
	IsExhausted        bool          `json:"isExhausted"`
	IsPastWorkingHours bool          `json:"isPastWorkingHours"`
	AvailableGaps      []GapResponse `json:"availableGaps"`
}

type GapResponse struct {
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	StartClock string    `json:"startClock"`
	EndClock   string    `json:"endClock"`
}

func FromWorkflowState(st usecase.State) *WorkflowResponse {
	resp := &WorkflowResponse{
		WorkflowID: st.ID,
		Selection: SelectionResponse{
			DoctorID:           st.Selection.DoctorID,
			ServiceID:          st.Selection.ServiceID,
			ServiceDurationMin: int(st.Selection.ServiceDuration / time.Minute),
			Date:               st.Selection.Date,
			AppointmentFor:     st.Selection.AppointmentFor,
		},
		Polling:           st.Polling,
		ScheduleFetchedAt: st.ScheduleFetchedAt,
	}
	if st.Lease != nil {
		resp.Hold = FromLease(st.Lease, st.Remaining)
	}
	if st.LastEvent != nil {
		resp.LastEvent = &EventResponse{
			Type:    string(st.LastEvent.Type),
			Message: st.LastEvent.Message,
			At:      st.LastEvent.At,
		}
	}
	return resp
}

func FromLease(l *lease.Lease, remaining time.Duration) *HoldResponse {
	return &HoldResponse{
		TimeslotID:       l.TimeslotID(),
		DoctorScheduleID: l.DoctorScheduleID(),
		StartTime:        l.Start(),
		EndTime:          l.End(),
		StartClock:       schedule.ClockString(l.Start()),
		EndClock:         schedule.ClockString(l.End()),
		ExpiresAt:        l.ExpiresAt(),
		RemainingSeconds: int(remaining / time.Second),
		Status:           l.Status().String(),
	}
}

func FromSnapshot(snap schedule.Snapshot) *ScheduleResponse {
	ranges := make([]ScheduleRangeResponse, len(snap.Ranges))
	for i, r := range snap.Ranges {
		gaps := make([]GapResponse, len(r.Gaps))
		for j, g := range r.Gaps {
			gaps[j] = GapResponse{
				StartTime:  g.Start,
				EndTime:    g.End,
				StartClock: schedule.ClockString(g.Start),
				EndClock:   schedule.ClockString(g.End),
			}
		}
		ranges[i] = ScheduleRangeResponse{
			ID:                 r.ID,
			Label:              r.Label,
			StartTime:          r.Start,
			EndTime:            r.End,
			IsExhausted:        r.Exhausted,
			IsPastWorkingHours: r.PastWorkingHours,
			AvailableGaps:      gaps,
		}
	}
	return &ScheduleResponse{
		DoctorScheduleID: snap.DoctorScheduleID,
		FetchedAt:        snap.FetchedAt,
		ScheduleRanges:   ranges,
	}
}
