package usecase

import "time"

type EventType string

const (
	EventAcquired   EventType = "acquired"
	EventReleased   EventType = "released"
	EventExpired    EventType = "expired"
	EventSuperseded EventType = "superseded"
)

// Event records a lease transition. The workflow keeps the latest one for the
// UI to poll, and every event triggers an immediate silent availability
// refresh so consumed/freed gaps become visible.
type Event struct {
	Type    EventType
	Message string
	At      time.Time
}
