package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-hold-gateway/internal/domain/lease"
	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/pkg/clock"
	"slot-hold-gateway/internal/pkg/errs"
)

var (
	ErrSuperseded          = errs.New("request superseded by a newer one")
	ErrNoActiveHold        = errs.New("no active hold")
	ErrSelectionIncomplete = errs.New("doctor, service, duration, and date must all be selected")
)

// ExpiryMessage is the user-facing text emitted when a hold's countdown
// reaches zero.
const ExpiryMessage = "Your slot hold has expired. Please select a time again."

type ReleaseOptions struct {
	// SkipAPI clears the local lease without calling the backend, e.g. when
	// the hold was consumed by a confirmed booking.
	SkipAPI bool
	// Silent swallows release failures instead of returning them.
	Silent bool
}

// Coordinator manages the single slot hold of one booking workflow:
// None → Acquiring → Active → {Expired | Released | Superseded} → None.
//
// At most one Active lease exists at any time. Each acquire carries a
// monotonically increasing token; when a later acquire starts before an
// earlier one's round trip completes, the earlier result is discarded on
// arrival, and a stale successful reserve is released so no orphan hold stays
// on the backend.
type Coordinator struct {
	slots  SlotService
	cache  *AvailabilityCache
	clock  clock.Clock
	logger *slog.Logger
	emit   func(Event)

	mu    sync.Mutex
	lease *lease.Lease
	seq   uint64
}

func NewCoordinator(slots SlotService, cache *AvailabilityCache, clk clock.Clock, logger *slog.Logger, emit func(Event)) *Coordinator {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Coordinator{
		slots:  slots,
		cache:  cache,
		clock:  clk,
		logger: logger,
		emit:   emit,
	}
}

// Acquire validates the candidate locally, then runs the remote
// validate+reserve pipeline. Local rejections return before any network call.
// Remote rejections carry the backend's message verbatim. The backend sees
// concurrent holds from other users, so its verdict wins over any local guess.
func (c *Coordinator) Acquire(ctx context.Context, sel Selection, candidate string) (*lease.Lease, error) {
	// Format and date problems are decided locally; they must not cost a
	// round trip even when no snapshot is cached yet.
	hour, minute, err := schedule.ParseClock(candidate)
	if err != nil {
		return nil, err
	}
	if _, err := schedule.LocalDateTime(sel.Date, hour, minute); err != nil {
		return nil, err
	}

	snap, ok := c.cache.Snapshot()
	if !ok {
		if err := c.cache.Load(ctx, sel, LoadOptions{}); err != nil {
			return nil, err
		}
		snap, _ = c.cache.Snapshot()
	}

	win, err := schedule.ValidateWindow(candidate, sel.Date, snap.Ranges, sel.ServiceDuration, c.clock.Now())
	if err != nil {
		return nil, err
	}

	// An existing hold is invalidated by the new candidate. Free it
	// server-side first, best effort; a release failure never blocks the new
	// acquire since the backend's own exclusivity check is the correctness
	// boundary.
	_ = c.releaseWith(ctx, lease.StatusSuperseded, ReleaseOptions{Silent: true})

	token := c.nextToken()

	if _, err := c.slots.ValidateTime(ctx, ValidateTimeInput{
		DoctorID:  sel.DoctorID,
		ServiceID: sel.ServiceID,
		Date:      sel.Date,
		StartTime: win.Start,
	}); err != nil {
		if c.stale(token) {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	reserved, err := c.slots.ReserveSlot(ctx, ReserveSlotInput{
		DoctorUserID:     sel.DoctorID,
		ServiceID:        sel.ServiceID,
		DoctorScheduleID: snap.DoctorScheduleID,
		Date:             sel.Date,
		StartTime:        win.Start,
		AppointmentFor:   sel.AppointmentFor,
	})
	if err != nil {
		if c.stale(token) {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	l := lease.NewLease(
		reserved.TimeslotID,
		sel.DoctorID,
		sel.ServiceID,
		reserved.DoctorScheduleID,
		sel.Date,
		reserved.StartTime,
		reserved.EndTime,
		reserved.ExpiresAt,
	)

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		// A newer request started while the reserve was in flight. Discard
		// this result and free the orphan hold.
		c.releaseRemote(context.WithoutCancel(ctx), reserved.TimeslotID)
		return nil, ErrSuperseded
	}
	c.lease = l
	c.mu.Unlock()

	c.emit(Event{Type: EventAcquired, Message: "slot held", At: c.clock.Now()})
	return l, nil
}

// Release clears the local lease unconditionally and, unless SkipAPI, frees
// the slot on the backend so it becomes available immediately instead of
// waiting out its TTL. Releasing when no lease is held is a no-op, not an
// error.
func (c *Coordinator) Release(ctx context.Context, opts ReleaseOptions) error {
	return c.releaseWith(ctx, lease.StatusReleased, opts)
}

// Supersede silently releases the current lease because one of its defining
// inputs (time, doctor, service, or date) changed.
func (c *Coordinator) Supersede(ctx context.Context) {
	_ = c.releaseWith(ctx, lease.StatusSuperseded, ReleaseOptions{Silent: true})
}

// Confirm consumes the active hold after the parent booking request succeeds.
// The backend converts the hold into the appointment, so no releaseSlot call
// is made.
func (c *Coordinator) Confirm() (*lease.Lease, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lease == nil {
		return nil, ErrNoActiveHold
	}
	l := c.lease
	c.lease = nil
	c.seq++
	return l, nil
}

// Tick re-derives the remaining time from the lease's absolute expiry. When
// it reaches zero the hold is auto-released silently and an Expired event is
// emitted, exactly once.
func (c *Coordinator) Tick(now time.Time) {
	c.mu.Lock()
	l := c.lease
	if l == nil || !l.ExpiredAt(now) {
		c.mu.Unlock()
		return
	}
	c.lease = nil
	c.seq++
	_ = l.Expire()
	c.mu.Unlock()

	c.releaseRemote(context.Background(), l.TimeslotID())
	c.emit(Event{Type: EventExpired, Message: ExpiryMessage, At: now})
}

// Lease returns the current lease, nil when none is held.
func (c *Coordinator) Lease() *lease.Lease {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lease
}

func (c *Coordinator) releaseWith(ctx context.Context, status lease.Status, opts ReleaseOptions) error {
	c.mu.Lock()
	l := c.lease
	c.lease = nil
	// Invalidate any in-flight acquire even when no lease is installed yet:
	// its reserve may still land, and the stale-token check must catch it.
	c.seq++
	if l == nil {
		c.mu.Unlock()
		return nil
	}
	if status == lease.StatusSuperseded {
		_ = l.Supersede()
	} else {
		_ = l.Release()
	}
	c.mu.Unlock()

	var apiErr error
	if !opts.SkipAPI {
		apiErr = c.slots.ReleaseSlot(ctx, l.TimeslotID())
		if apiErr != nil {
			c.logger.Warn("failed to release slot", "timeslot_id", l.TimeslotID(), "error", apiErr)
		}
	}

	evType := EventReleased
	if status == lease.StatusSuperseded {
		evType = EventSuperseded
	}
	c.emit(Event{Type: evType, At: c.clock.Now()})

	if opts.Silent {
		return nil
	}
	if apiErr != nil {
		return errs.Wrap(apiErr, "failed to release slot")
	}
	return nil
}

func (c *Coordinator) releaseRemote(ctx context.Context, timeslotID string) {
	if err := c.slots.ReleaseSlot(ctx, timeslotID); err != nil {
		c.logger.Warn("failed to release slot", "timeslot_id", timeslotID, "error", err)
	}
}

func (c *Coordinator) nextToken() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Coordinator) stale(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token != c.seq
}
