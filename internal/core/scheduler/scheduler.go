package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restie/internal/core/model"

	"github.com/google/uuid"
)

const (
	// DefaultTickInterval is the polling cadence of the timing loop.
	DefaultTickInterval = 500 * time.Millisecond
	// TriggerWindow is how close to the scheduled time a break counts as due.
	TriggerWindow = 500 * time.Millisecond
	// PostponeDelay is the fixed grace period applied by PostponeBreak.
	PostponeDelay = 5 * time.Minute
)

// Notifier presents a due break to the user. Implementations must be idempotent:
// a second call while the break surface exists re-focuses it.
type Notifier interface {
	PresentBreak(breakType model.BreakType, fullscreen bool) error
}

// SettingsSource supplies the current break settings.
type SettingsSource interface {
	Settings() model.BreakSettings
}

// Config contains runtime options for Scheduler.
type Config struct {
	TickInterval time.Duration
	Now          func() time.Time
	NewID        func() string
	Logger       *slog.Logger
}

// Scheduler owns the break state machine and its timing loop.
type Scheduler struct {
	mu        sync.Mutex
	settings  SettingsSource
	options   Config
	logger    *slog.Logger
	state     model.BreakState
	schedule  model.SchedulerState
	notifier  Notifier
	triggered bool
	events    []chan Event
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// New creates a Scheduler and computes the first schedule.
func New(settings SettingsSource, options Config) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.NewID == nil {
		options.NewID = uuid.NewString
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scheduler := &Scheduler{
		settings: settings,
		options:  options,
		logger:   logger.With("component", "scheduler"),
	}
	current := settings.Settings()
	scheduler.mu.Lock()
	scheduler.scheduleNextLocked(current, options.Now())
	scheduler.mu.Unlock()
	return scheduler
}

// NextBreakType picks the type of the next break. The check looks one
// microbreak ahead, so with an interval of N the Nth slot is already a longbreak.
func NextBreakType(settings model.BreakSettings, microbreaksSinceLongbreak int) model.BreakType {
	if microbreaksSinceLongbreak+1 >= settings.LongbreakIntervalMicrobreaks {
		return model.BreakTypeLongbreak
	}
	return model.BreakTypeMicrobreak
}

// WaitBefore returns the work time preceding a break of the given type.
// Longbreaks reuse their duration as the wait.
func WaitBefore(settings model.BreakSettings, breakType model.BreakType) time.Duration {
	if breakType == model.BreakTypeLongbreak {
		return settings.LongbreakDuration()
	}
	return settings.MicrobreakInterval()
}

// SetNotifier injects the collaborator that presents breaks. Until it is set,
// due breaks are logged and skipped.
func (scheduler *Scheduler) SetNotifier(notifier Notifier) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.notifier = notifier
}

// Subscribe registers a new observer channel.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	scheduler.events = append(scheduler.events, ch)
	scheduler.mu.Unlock()
	return ch
}

// Start launches the timing loop. It is a no-op while a loop is running, so
// there is never more than one loop per scheduler.
func (scheduler *Scheduler) Start(ctx context.Context) {
	scheduler.mu.Lock()
	if scheduler.running {
		scheduler.mu.Unlock()
		return
	}
	scheduler.running = true
	scheduler.triggered = false
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	scheduler.stopCh = stopCh
	scheduler.doneCh = doneCh
	scheduler.mu.Unlock()

	scheduler.logger.Info("timing loop started", "tick", scheduler.options.TickInterval)
	go scheduler.run(ctx, stopCh, doneCh)
}

// Stop terminates the timing loop, waits for it to exit and closes observers.
// A loop that already ended through its context is only awaited.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if scheduler.doneCh == nil {
		scheduler.mu.Unlock()
		return
	}
	if scheduler.running {
		close(scheduler.stopCh)
	}
	doneCh := scheduler.doneCh
	scheduler.running = false
	scheduler.stopCh = nil
	scheduler.doneCh = nil
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	<-doneCh
	for _, ch := range events {
		close(ch)
	}
	scheduler.logger.Info("timing loop stopped")
}

// StartBreak marks a break as being shown.
func (scheduler *Scheduler) StartBreak() {
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.state.IsBreakActive = true
	if scheduler.state.BreakType == model.BreakTypeNone {
		scheduler.state.BreakType = scheduler.schedule.CurrentBreakType
	}
	scheduler.emitScheduleEventLocked(EventBreakStarted, now)
}

// Pause suspends break triggering without touching the schedule.
func (scheduler *Scheduler) Pause() {
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.state.IsPaused {
		return
	}
	scheduler.state.IsPaused = true
	scheduler.emitScheduleEventLocked(EventPaused, now)
}

// Resume re-enables triggering. A deadline that elapsed while paused fires on
// the next tick.
func (scheduler *Scheduler) Resume() {
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if !scheduler.state.IsPaused {
		return
	}
	scheduler.state.IsPaused = false
	scheduler.emitScheduleEventLocked(EventResumed, now)
}

// SkipBreak ends the current break without counting it and schedules the next one.
// The microbreak counter is left as is.
func (scheduler *Scheduler) SkipBreak() {
	settings := scheduler.settings.Settings()
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	skipped := scheduler.state.BreakType
	scheduler.clearActiveLocked()
	scheduler.state.SkipCount++
	scheduler.emitLocked(Event{
		Type:       EventBreakSkipped,
		BreakType:  scheduleTypeOr(skipped, scheduler.schedule.CurrentBreakType),
		ScheduleID: scheduler.schedule.ScheduleID,
		State:      scheduler.state,
		At:         now,
	})
	scheduler.scheduleNextLocked(settings, now)
}

// PostponeBreak moves the pending break to exactly PostponeDelay from now,
// whatever its type or remaining time.
func (scheduler *Scheduler) PostponeBreak() {
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.state.PostponeCount++
	scheduler.schedule.ScheduledBreakTime = now.Add(PostponeDelay)
	scheduler.schedule.TimeLeft = PostponeDelay
	scheduler.emitScheduleEventLocked(EventBreakPostponed, now)

	scheduler.logger.Info("break postponed",
		"break_type", scheduler.schedule.CurrentBreakType,
		"at", scheduler.schedule.ScheduledBreakTime.Format(time.TimeOnly),
	)
}

// CompleteBreak counts the break, advances the rotation and schedules the next one.
func (scheduler *Scheduler) CompleteBreak() {
	settings := scheduler.settings.Settings()
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	completed := scheduler.state.BreakType
	scheduler.clearActiveLocked()
	scheduler.state.BreakNumber++
	if scheduler.state.MicrobreaksSinceLongbreak+1 >= settings.LongbreakIntervalMicrobreaks {
		scheduler.state.MicrobreaksSinceLongbreak = 0
	} else {
		scheduler.state.MicrobreaksSinceLongbreak++
	}
	scheduler.emitLocked(Event{
		Type:       EventBreakCompleted,
		BreakType:  scheduleTypeOr(completed, scheduler.schedule.CurrentBreakType),
		ScheduleID: scheduler.schedule.ScheduleID,
		State:      scheduler.state,
		At:         now,
	})
	scheduler.scheduleNextLocked(settings, now)
}

// RescheduleWithNewSettings recomputes the schedule from the current settings.
// While a break is active nothing changes and false is returned; the new
// settings take effect when that break completes.
func (scheduler *Scheduler) RescheduleWithNewSettings() bool {
	settings := scheduler.settings.Settings()
	now := scheduler.options.Now()
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.state.IsBreakActive {
		scheduler.logger.Info("break active, reschedule deferred until it completes")
		return false
	}
	scheduler.schedule = model.SchedulerState{}
	scheduler.scheduleNextLocked(settings, now)
	return true
}

// PresentNow shows the upcoming break immediately without changing the schedule.
func (scheduler *Scheduler) PresentNow() {
	settings := scheduler.settings.Settings()
	scheduler.mu.Lock()
	notifier := scheduler.notifier
	breakType := scheduler.schedule.CurrentBreakType
	scheduler.mu.Unlock()

	scheduler.present(notifier, breakType, settings.FullscreenBreaks)
}

// State returns a snapshot of the break state.
func (scheduler *Scheduler) State() model.BreakState {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.state
}

// SchedulerState returns a snapshot of the current schedule.
func (scheduler *Scheduler) SchedulerState() model.SchedulerState {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.schedule
}

func (scheduler *Scheduler) run(ctx context.Context, stopCh chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer func() {
		scheduler.mu.Lock()
		if scheduler.stopCh == stopCh {
			scheduler.running = false
		}
		scheduler.mu.Unlock()
	}()
	ticker := time.NewTicker(scheduler.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.tick(scheduler.options.Now())
		}
	}
}

func (scheduler *Scheduler) tick(now time.Time) {
	scheduler.mu.Lock()
	if scheduler.state.IsPaused || !scheduler.schedule.Scheduled() {
		scheduler.mu.Unlock()
		return
	}

	timeLeft := scheduler.schedule.TimeLeftAt(now)
	scheduler.schedule.TimeLeft = timeLeft
	scheduler.emitScheduleEventLocked(EventProgress, now)

	if timeLeft > TriggerWindow {
		scheduler.triggered = false
		scheduler.mu.Unlock()
		return
	}
	if scheduler.triggered {
		scheduler.mu.Unlock()
		return
	}
	scheduler.triggered = true
	notifier := scheduler.notifier
	breakType := scheduler.schedule.CurrentBreakType
	scheduler.emitScheduleEventLocked(EventBreakDue, now)
	scheduler.mu.Unlock()

	scheduler.logger.Info("break due", "break_type", breakType, "time_left", timeLeft)
	settings := scheduler.settings.Settings()
	scheduler.present(notifier, breakType, settings.FullscreenBreaks)
}

func (scheduler *Scheduler) present(notifier Notifier, breakType model.BreakType, fullscreen bool) {
	if notifier == nil {
		scheduler.logger.Warn("no notifier available, break not presented", "break_type", breakType)
		return
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			scheduler.logger.Error("notifier panicked", "break_type", breakType, "panic", fmt.Sprint(recovered))
		}
	}()
	if err := notifier.PresentBreak(breakType, fullscreen); err != nil {
		scheduler.logger.Error("present break", "break_type", breakType, "fullscreen", fullscreen, "error", err)
	}
}

func (scheduler *Scheduler) scheduleNextLocked(settings model.BreakSettings, now time.Time) {
	breakType := NextBreakType(settings, scheduler.state.MicrobreaksSinceLongbreak)
	wait := WaitBefore(settings, breakType)

	scheduler.schedule = model.SchedulerState{
		ScheduledBreakTime: now.Add(wait),
		CurrentBreakType:   breakType,
		TimeLeft:           wait,
		ScheduleID:         scheduler.options.NewID(),
	}
	scheduler.emitScheduleEventLocked(EventScheduled, now)

	scheduler.logger.Info("break scheduled",
		"break_type", breakType,
		"in", wait,
		"at", scheduler.schedule.ScheduledBreakTime.Format(time.TimeOnly),
	)
}

func (scheduler *Scheduler) clearActiveLocked() {
	scheduler.state.IsBreakActive = false
	scheduler.state.BreakType = model.BreakTypeNone
}

func (scheduler *Scheduler) emitScheduleEventLocked(eventType EventType, now time.Time) {
	scheduler.emitLocked(Event{
		Type:        eventType,
		BreakType:   scheduleTypeOr(scheduler.state.BreakType, scheduler.schedule.CurrentBreakType),
		ScheduleID:  scheduler.schedule.ScheduleID,
		ScheduledAt: scheduler.schedule.ScheduledBreakTime,
		Remaining:   scheduler.schedule.TimeLeft,
		State:       scheduler.state,
		At:          now,
	})
}

func (scheduler *Scheduler) emitLocked(event Event) {
	for _, ch := range scheduler.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func scheduleTypeOr(active, scheduled model.BreakType) model.BreakType {
	if active != model.BreakTypeNone {
		return active
	}
	return scheduled
}
