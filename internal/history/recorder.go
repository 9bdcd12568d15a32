package history

import (
	"context"
	"log/slog"

	"restie/internal/core/scheduler"
)

// Recorder writes break outcomes from scheduler events into the repository.
type Recorder struct {
	repo   *Repository
	logger *slog.Logger
}

func NewRecorder(repo *Repository, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger.With("component", "history")}
}

// Run consumes events until the channel closes or ctx is done.
func (recorder *Recorder) Run(ctx context.Context, events <-chan scheduler.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			recorder.Record(event)
		}
	}
}

// Record stores one event if it is a break outcome. Write failures are logged.
func (recorder *Recorder) Record(event scheduler.Event) {
	kind, ok := kindFor(event.Type)
	if !ok {
		return
	}

	record := &BreakRecord{
		ScheduleID: event.ScheduleID,
		Kind:       kind,
		BreakType:  string(event.BreakType),
		At:         event.At,
	}
	if err := recorder.repo.Create(record); err != nil {
		recorder.logger.Error("record break", "kind", kind, "error", err)
	}
}

func kindFor(eventType scheduler.EventType) (Kind, bool) {
	switch eventType {
	case scheduler.EventBreakDue:
		return KindDue, true
	case scheduler.EventBreakSkipped:
		return KindSkipped, true
	case scheduler.EventBreakPostponed:
		return KindPostponed, true
	case scheduler.EventBreakCompleted:
		return KindCompleted, true
	default:
		return "", false
	}
}
