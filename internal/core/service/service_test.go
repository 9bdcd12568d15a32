package service

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"restie/internal/core/model"
	"restie/internal/core/scheduler"
	"restie/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store SettingsStore) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	breakScheduler := scheduler.New(store, scheduler.Config{
		Now:    func() time.Time { return fixedNow },
		Logger: logger,
	})
	return New(store, breakScheduler, logger)
}

func TestUpdateSettingsAppliesAndReschedules(t *testing.T) {
	service := newTestService(t, storage.NewSettingsStore(""))

	updated := model.DefaultSettings()
	updated.MicrobreakIntervalMinutes = 30
	updated.FullscreenBreaks = true

	returned, err := service.UpdateSettings(updated)
	require.NoError(t, err)
	assert.Equal(t, updated, returned)
	assert.Equal(t, updated, service.Settings())
	assert.Equal(t, fixedNow.Add(30*time.Minute), service.SchedulerState().ScheduledBreakTime)
}

func TestUpdateSettingsRejectsOutOfRange(t *testing.T) {
	service := newTestService(t, storage.NewSettingsStore(""))
	before := service.SchedulerState()

	invalid := model.DefaultSettings()
	invalid.LongbreakIntervalMicrobreaks = 11

	_, err := service.UpdateSettings(invalid)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid long break interval: must be 1-10 microbreaks")
	assert.Equal(t, model.DefaultSettings(), service.Settings())
	assert.Equal(t, before, service.SchedulerState())
}

func TestUpdateSettingsDuringActiveBreakKeepsSchedule(t *testing.T) {
	service := newTestService(t, storage.NewSettingsStore(""))
	service.StartBreak()
	before := service.SchedulerState()

	updated := model.DefaultSettings()
	updated.MicrobreakIntervalMinutes = 10
	_, err := service.UpdateSettings(updated)
	require.NoError(t, err)

	assert.Equal(t, updated, service.Settings())
	assert.Equal(t, before, service.SchedulerState())

	service.CompleteBreak()
	assert.Equal(t, fixedNow.Add(10*time.Minute), service.SchedulerState().ScheduledBreakTime)
}

type failingStore struct {
	settings model.BreakSettings
}

func (store *failingStore) Settings() model.BreakSettings { return store.settings }

func (store *failingStore) Update(settings model.BreakSettings) error {
	store.settings = settings
	return errors.New("disk full")
}

func TestUpdateSettingsSurvivesPersistenceFailure(t *testing.T) {
	store := &failingStore{settings: model.DefaultSettings()}
	service := newTestService(t, store)

	updated := model.DefaultSettings()
	updated.MicrobreakIntervalMinutes = 15
	_, err := service.UpdateSettings(updated)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(15*time.Minute), service.SchedulerState().ScheduledBreakTime)
}

func TestCommandsReturnSnapshots(t *testing.T) {
	service := newTestService(t, storage.NewSettingsStore(filepath.Join(t.TempDir(), "settings.yaml")))

	state := service.StartBreak()
	assert.True(t, state.IsBreakActive)

	state = service.SkipBreak()
	assert.False(t, state.IsBreakActive)
	assert.Equal(t, 1, state.SkipCount)

	state = service.PostponeBreak()
	assert.Equal(t, 1, state.PostponeCount)

	state = service.TogglePause()
	assert.True(t, state.IsPaused)
	state = service.TogglePause()
	assert.False(t, state.IsPaused)

	state = service.PauseBreaks()
	assert.True(t, state.IsPaused)
	state = service.ResumeBreaks()
	assert.False(t, state.IsPaused)

	state = service.CompleteBreak()
	assert.Equal(t, 1, state.BreakNumber)
	assert.Equal(t, state, service.BreakState())
}
