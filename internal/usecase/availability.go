package usecase

import (
	"context"
	"log/slog"
	"sync"

	"slot-hold-gateway/internal/domain/schedule"
	"slot-hold-gateway/internal/pkg/clock"
	"slot-hold-gateway/internal/pkg/errs"
)

type LoadOptions struct {
	// Silent swallows and logs failures instead of returning them, so
	// background maintenance never interrupts the user.
	Silent bool
}

// AvailabilityCache holds the current schedule snapshot for the workflow's
// doctor+service+date. Each load replaces the snapshot wholesale; partial
// data is never merged in. User input lives outside the cache, so a silent
// refresh cannot disturb it by construction.
type AvailabilityCache struct {
	slots  SlotService
	clock  clock.Clock
	logger *slog.Logger

	mu   sync.RWMutex
	snap *schedule.Snapshot
}

func NewAvailabilityCache(slots SlotService, clk clock.Clock, logger *slog.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		slots:  slots,
		clock:  clk,
		logger: logger,
	}
}

func (a *AvailabilityCache) Load(ctx context.Context, sel Selection, opts LoadOptions) error {
	snap, err := a.slots.GetScheduleRange(ctx, ScheduleQuery{
		DoctorID:       sel.DoctorID,
		ServiceID:      sel.ServiceID,
		Date:           sel.Date,
		AppointmentFor: sel.AppointmentFor,
	})
	if err != nil {
		if opts.Silent {
			a.logger.Warn("silent availability refresh failed", "date", sel.Date, "error", err)
			return nil
		}
		return errs.Wrap(err, "failed to load schedule availability")
	}
	snap.FetchedAt = a.clock.Now()

	a.mu.Lock()
	a.snap = snap
	a.mu.Unlock()
	return nil
}

func (a *AvailabilityCache) Snapshot() (schedule.Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.snap == nil {
		return schedule.Snapshot{}, false
	}
	return *a.snap, true
}

func (a *AvailabilityCache) Clear() {
	a.mu.Lock()
	a.snap = nil
	a.mu.Unlock()
}
