package scheduler

import (
	"time"

	"restie/internal/core/model"
)

// EventType defines the type of scheduler event.
type EventType string

const (
	EventScheduled      EventType = "scheduled"
	EventBreakDue       EventType = "break_due"
	EventBreakStarted   EventType = "break_started"
	EventBreakSkipped   EventType = "break_skipped"
	EventBreakPostponed EventType = "break_postponed"
	EventBreakCompleted EventType = "break_completed"
	EventPaused         EventType = "paused"
	EventResumed        EventType = "resumed"
	EventProgress       EventType = "progress"
)

// Event represents a scheduler update for observers.
type Event struct {
	Type        EventType
	BreakType   model.BreakType
	ScheduleID  string
	ScheduledAt time.Time
	Remaining   time.Duration
	State       model.BreakState
	At          time.Time
}
