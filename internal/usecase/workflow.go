package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-hold-gateway/internal/domain/lease"
	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/pkg/clock"
	"slot-hold-gateway/internal/pkg/config"

	"github.com/google/uuid"
)

// Workflow is one UI booking/reschedule session. It owns the coordinator,
// availability cache, countdown, and poller, and tears them all down
// together so no timer outlives its workflow.
type Workflow struct {
	id     uuid.UUID
	clock  clock.Clock
	logger *slog.Logger

	cache     *AvailabilityCache
	coord     *Coordinator
	countdown *Countdown
	poller    *Poller

	mu  sync.Mutex // guards sel
	sel Selection

	evMu      sync.Mutex
	lastEvent *Event
}

func NewWorkflow(id uuid.UUID, sel Selection, slots SlotService, clk clock.Clock, logger *slog.Logger, cfg config.HoldConfig) *Workflow {
	w := &Workflow{
		id:     id,
		clock:  clk,
		logger: logger,
		sel:    sel,
	}
	w.cache = NewAvailabilityCache(slots, clk, logger)
	w.coord = NewCoordinator(slots, w.cache, clk, logger, w.onEvent)
	w.countdown = NewCountdown(cfg.TickInterval, clk, w.coord.Tick)
	w.poller = NewPoller(cfg.PollInterval, w.refreshSilent)
	if sel.Complete() {
		w.poller.Start()
	}
	return w
}

func (w *Workflow) ID() uuid.UUID {
	return w.id
}

// SelectionPatch updates a subset of the selection; nil fields are left
// untouched. An empty Date clears the date and stops polling.
type SelectionPatch struct {
	DoctorID        *uuid.UUID
	ServiceID       *uuid.UUID
	ServiceDuration *time.Duration
	Date            *string
	AppointmentFor  *string
}

// UpdateSelection applies the patch. A change to any defining input (doctor,
// service, date, duration) supersedes an existing hold before anything else
// can be acquired, and invalidates the cached availability.
func (w *Workflow) UpdateSelection(ctx context.Context, patch SelectionPatch) Selection {
	w.mu.Lock()
	next := w.sel
	if patch.DoctorID != nil {
		next.DoctorID = *patch.DoctorID
	}
	if patch.ServiceID != nil {
		next.ServiceID = *patch.ServiceID
	}
	if patch.ServiceDuration != nil {
		next.ServiceDuration = *patch.ServiceDuration
	}
	if patch.Date != nil {
		next.Date = *patch.Date
	}
	if patch.AppointmentFor != nil {
		next.AppointmentFor = *patch.AppointmentFor
	}
	superseding := next.DoctorID != w.sel.DoctorID ||
		next.ServiceID != w.sel.ServiceID ||
		next.Date != w.sel.Date ||
		next.ServiceDuration != w.sel.ServiceDuration
	w.sel = next
	w.mu.Unlock()

	if superseding {
		w.coord.Supersede(ctx)
		w.cache.Clear()
	}
	if next.Complete() {
		w.poller.Start()
		w.poller.Kick()
	} else {
		w.poller.Stop()
		w.cache.Clear()
	}
	return next
}

// AcquireHold runs the acquire pipeline for a user-entered "HH:MM" candidate.
func (w *Workflow) AcquireHold(ctx context.Context, candidate string) (*lease.Lease, error) {
	w.mu.Lock()
	sel := w.sel
	w.mu.Unlock()
	if !sel.Complete() {
		return nil, ErrSelectionIncomplete
	}
	return w.coord.Acquire(ctx, sel, candidate)
}

func (w *Workflow) ReleaseHold(ctx context.Context) error {
	return w.coord.Release(ctx, ReleaseOptions{})
}

// Confirm consumes the active hold after the parent booking request
// succeeded; the countdown stops and the backend keeps the slot.
func (w *Workflow) Confirm() (*lease.Lease, error) {
	l, err := w.coord.Confirm()
	if err != nil {
		return nil, err
	}
	w.countdown.Stop()
	return l, nil
}

// Schedule returns the availability snapshot, loading it on first access or
// when refresh is forced.
func (w *Workflow) Schedule(ctx context.Context, refresh bool) (schedule.Snapshot, error) {
	w.mu.Lock()
	sel := w.sel
	w.mu.Unlock()
	if !sel.Complete() {
		return schedule.Snapshot{}, ErrSelectionIncomplete
	}

	if _, ok := w.cache.Snapshot(); !ok || refresh {
		if err := w.cache.Load(ctx, sel, LoadOptions{}); err != nil {
			return schedule.Snapshot{}, err
		}
	}
	snap, _ := w.cache.Snapshot()
	return snap, nil
}

type State struct {
	ID                uuid.UUID
	Selection         Selection
	Lease             *lease.Lease
	Remaining         time.Duration
	LastEvent         *Event
	Polling           bool
	ScheduleFetchedAt *time.Time
}

func (w *Workflow) State() State {
	w.mu.Lock()
	sel := w.sel
	w.mu.Unlock()
	w.evMu.Lock()
	ev := w.lastEvent
	w.evMu.Unlock()

	st := State{
		ID:        w.id,
		Selection: sel,
		LastEvent: ev,
		Polling:   w.poller.Running(),
	}
	if l := w.coord.Lease(); l != nil {
		st.Lease = l
		if remaining := l.Remaining(w.clock.Now()); remaining > 0 {
			st.Remaining = remaining
		}
	}
	if snap, ok := w.cache.Snapshot(); ok {
		st.ScheduleFetchedAt = &snap.FetchedAt
	}
	return st
}

// Teardown stops both timers synchronously and frees any active hold without
// waiting for the backend round trip.
func (w *Workflow) Teardown() {
	w.countdown.Stop()
	w.poller.Stop()
	if w.coord.Lease() == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.coord.Release(ctx, ReleaseOptions{Silent: true})
	}()
}

func (w *Workflow) refreshSilent(ctx context.Context) {
	w.mu.Lock()
	sel := w.sel
	w.mu.Unlock()
	if !sel.Complete() {
		return
	}
	_ = w.cache.Load(ctx, sel, LoadOptions{Silent: true})
}

func (w *Workflow) onEvent(e Event) {
	w.evMu.Lock()
	w.lastEvent = &e
	w.evMu.Unlock()

	switch e.Type {
	case EventAcquired:
		w.countdown.Start()
	case EventReleased, EventExpired, EventSuperseded:
		w.countdown.Stop()
	}
	w.poller.Kick()
}
