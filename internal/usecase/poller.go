package usecase

import (
	"context"
	"sync"
	"time"
)

// Poller refreshes the availability snapshot on a fixed interval while the
// workflow holds a complete doctor+service+date selection, and immediately
// after lease transitions via Kick. Refreshes run silent so they never reset
// in-progress user input.
type Poller struct {
	interval time.Duration
	refresh  func(context.Context)

	mu   sync.Mutex
	stop chan struct{}
	kick chan struct{}
}

func NewPoller(interval time.Duration, refresh func(context.Context)) *Poller {
	return &Poller{
		interval: interval,
		refresh:  refresh,
	}
}

// Start begins polling with an immediate first refresh. No-op when already
// running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.kick = make(chan struct{}, 1)
	go p.run(p.stop, p.kick)
}

// Kick requests an immediate out-of-band refresh. Coalesces when one is
// already pending; no-op when the poller is stopped.
func (p *Poller) Kick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kick == nil {
		return
	}
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
	p.kick = nil
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *Poller) run(stop, kick chan struct{}) {
	p.refresh(context.Background())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.refresh(context.Background())
		case <-kick:
			p.refresh(context.Background())
		}
	}
}
