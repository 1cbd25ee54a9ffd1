package usecase

import (
	"sync"
	"time"

	"slot-hold-gateway/internal/pkg/clock"
)

// Countdown drives the coordinator's expiry check while a lease is Active.
// Every tick samples the clock and hands the instant to the tick function,
// which re-derives remaining time from the stored absolute expiry. Nothing
// is decremented locally, so a throttled or adjusted clock cannot drift the
// countdown away from the server-issued expiresAt.
type Countdown struct {
	interval time.Duration
	clock    clock.Clock
	tick     func(time.Time)

	mu   sync.Mutex
	stop chan struct{}
}

func NewCountdown(interval time.Duration, clk clock.Clock, tick func(time.Time)) *Countdown {
	return &Countdown{
		interval: interval,
		clock:    clk,
		tick:     tick,
	}
}

// Start launches the tick loop. Starting an already running countdown is a
// no-op.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	go c.run(c.stop)
}

// Stop halts the loop synchronously. Safe to call repeatedly and from within
// a tick callback.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Countdown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick(c.clock.Now())
		}
	}
}
