package usecase

import (
	"log/slog"
	"sync"

	"slot-hold-gateway/internal/pkg/clock"
	"slot-hold-gateway/internal/pkg/config"

	"github.com/google/uuid"
)

// Registry owns the live workflows, keyed by id. Workflows are purely
// in-memory; they die with the process, and all durable reservation state
// stays on the booking backend.
type Registry struct {
	slots  SlotService
	clock  clock.Clock
	logger *slog.Logger
	hold   config.HoldConfig

	mu    sync.Mutex
	flows map[uuid.UUID]*Workflow
}

func NewRegistry(slots SlotService, clk clock.Clock, logger *slog.Logger, cfg config.Config) *Registry {
	return &Registry{
		slots:  slots,
		clock:  clk,
		logger: logger,
		hold:   cfg.Hold,
		flows:  make(map[uuid.UUID]*Workflow),
	}
}

func (r *Registry) Create(sel Selection) *Workflow {
	w := NewWorkflow(uuid.New(), sel, r.slots, r.clock, r.logger, r.hold)
	r.mu.Lock()
	r.flows[w.ID()] = w
	r.mu.Unlock()
	r.logger.Info("workflow created", "workflow_id", w.ID())
	return w
}

func (r *Registry) Get(id uuid.UUID) (*Workflow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.flows[id]
	return w, ok
}

// Remove tears the workflow down and drops it. Returns false when no such
// workflow exists.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	w, ok := r.flows[id]
	if ok {
		delete(r.flows, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	w.Teardown()
	r.logger.Info("workflow removed", "workflow_id", id)
	return true
}

// Shutdown tears down every workflow; used on server stop.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	flows := make([]*Workflow, 0, len(r.flows))
	for _, w := range r.flows {
		flows = append(flows, w)
	}
	r.flows = make(map[uuid.UUID]*Workflow)
	r.mu.Unlock()

	for _, w := range flows {
		w.Teardown()
	}
}
