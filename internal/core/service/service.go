package service

import (
	"errors"
	"log/slog"

	"restie/internal/core/model"
	"restie/internal/core/scheduler"
)

// SettingsStore supplies and accepts validated break settings.
type SettingsStore interface {
	Settings() model.BreakSettings
	Update(settings model.BreakSettings) error
}

// Service is the command surface used by the UI layer. Every command is
// synchronous and returns a fresh snapshot.
type Service struct {
	store     SettingsStore
	scheduler *scheduler.Scheduler
	logger    *slog.Logger
}

// New creates a Service over the given store and scheduler.
func New(store SettingsStore, breakScheduler *scheduler.Scheduler, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		scheduler: breakScheduler,
		logger:    logger.With("component", "service"),
	}
}

// StartBreak marks the due break as on screen.
func (service *Service) StartBreak() model.BreakState {
	service.scheduler.StartBreak()
	return service.scheduler.State()
}

// PauseBreaks suspends break triggering.
func (service *Service) PauseBreaks() model.BreakState {
	service.scheduler.Pause()
	return service.scheduler.State()
}

// ResumeBreaks re-enables triggering without moving the schedule.
func (service *Service) ResumeBreaks() model.BreakState {
	service.scheduler.Resume()
	return service.scheduler.State()
}

// SkipBreak dismisses the current break and schedules the next one.
func (service *Service) SkipBreak() model.BreakState {
	service.scheduler.SkipBreak()
	return service.scheduler.State()
}

// PostponeBreak moves the pending break five minutes from now.
func (service *Service) PostponeBreak() model.BreakState {
	service.scheduler.PostponeBreak()
	return service.scheduler.State()
}

// CompleteBreak records a finished break and advances the rotation.
func (service *Service) CompleteBreak() model.BreakState {
	service.scheduler.CompleteBreak()
	return service.scheduler.State()
}

// TakeBreakNow presents the upcoming break immediately. The schedule is kept.
func (service *Service) TakeBreakNow() model.BreakState {
	service.scheduler.PresentNow()
	return service.scheduler.State()
}

// TogglePause pauses when running and resumes when paused.
func (service *Service) TogglePause() model.BreakState {
	if service.scheduler.State().IsPaused {
		return service.ResumeBreaks()
	}
	return service.PauseBreaks()
}

// BreakState returns a snapshot of the break state.
func (service *Service) BreakState() model.BreakState {
	return service.scheduler.State()
}

// SchedulerState returns a snapshot of the current schedule.
func (service *Service) SchedulerState() model.SchedulerState {
	return service.scheduler.SchedulerState()
}

// Settings returns the settings in effect.
func (service *Service) Settings() model.BreakSettings {
	return service.store.Settings()
}

// UpdateSettings validates and stores new settings, then reschedules. Only a
// validation failure is returned; the previous settings stay in effect in
// that case.
func (service *Service) UpdateSettings(settings model.BreakSettings) (model.BreakSettings, error) {
	if err := settings.Validate(); err != nil {
		service.logger.Warn("settings rejected", "error", err)
		return model.BreakSettings{}, err
	}

	if err := service.store.Update(settings); err != nil {
		if errors.Is(err, model.ErrInvalidSettings) {
			return model.BreakSettings{}, err
		}
		service.logger.Error("persist settings", "error", err)
	}

	if service.scheduler.RescheduleWithNewSettings() {
		service.logger.Info("rescheduled with new settings")
	}
	return settings, nil
}
