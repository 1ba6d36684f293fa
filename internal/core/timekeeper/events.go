package timekeeper

import (
	"time"

	"timeflo/internal/core/model"
)

// RunMode represents whether the current interval is counting down.
type RunMode string

const (
	ModeRunning     RunMode = "running"
	ModePaused      RunMode = "paused"
	ModeAwaitingAck RunMode = "awaiting_acknowledgement"
)

// EventType defines a lifecycle event emitted by the Engine.
type EventType string

const (
	EventIntervalStarted   EventType = "interval_started"
	EventIntervalCompleted EventType = "interval_completed"
)

// Event is a lifecycle transition of the Engine.
type Event struct {
	Type EventType
	Kind model.IntervalKind
}

// UpdateType defines the type of Keeper update.
type UpdateType string

const (
	UpdateEvent     UpdateType = "event"
	UpdateProgress  UpdateType = "progress"
	UpdateIdlePause UpdateType = "idle_pause"
	UpdateIdleError UpdateType = "idle_error"
)

// Update represents a Keeper notification for observers.
// Event is only meaningful when Type is UpdateEvent.
type Update struct {
	Type     UpdateType
	Event    Event
	Snapshot Snapshot
	Message  string
	At       time.Time
}

// Snapshot is a read-only view of the timer state for rendering.
type Snapshot struct {
	Kind        model.IntervalKind
	Remaining   time.Duration
	Duration    time.Duration
	Mode        RunMode
	ShortBreaks int
}

// Progress returns the elapsed fraction of the current interval in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Duration <= 0 {
		return 1
	}
	progress := float64(snapshot.Duration-snapshot.Remaining) / float64(snapshot.Duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
