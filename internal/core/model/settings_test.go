package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()
	require.NoError(t, settings.Validate())
	assert.Equal(t, 20, settings.MicrobreakIntervalMinutes)
	assert.Equal(t, 20, settings.MicrobreakDurationSeconds)
	assert.Equal(t, 4, settings.LongbreakIntervalMicrobreaks)
	assert.Equal(t, 5, settings.LongbreakDurationMinutes)
	assert.False(t, settings.FullscreenBreaks)
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*BreakSettings)
		message string
	}{
		{"microbreak interval low", func(s *BreakSettings) { s.MicrobreakIntervalMinutes = 0 }, "invalid microbreak interval: must be 1-60 minutes"},
		{"microbreak interval high", func(s *BreakSettings) { s.MicrobreakIntervalMinutes = 61 }, "invalid microbreak interval: must be 1-60 minutes"},
		{"microbreak duration low", func(s *BreakSettings) { s.MicrobreakDurationSeconds = 4 }, "invalid microbreak duration: must be 5-300 seconds"},
		{"microbreak duration high", func(s *BreakSettings) { s.MicrobreakDurationSeconds = 301 }, "invalid microbreak duration: must be 5-300 seconds"},
		{"long break interval low", func(s *BreakSettings) { s.LongbreakIntervalMicrobreaks = 0 }, "invalid long break interval: must be 1-10 microbreaks"},
		{"long break interval high", func(s *BreakSettings) { s.LongbreakIntervalMicrobreaks = 11 }, "invalid long break interval: must be 1-10 microbreaks"},
		{"long break duration low", func(s *BreakSettings) { s.LongbreakDurationMinutes = 0 }, "invalid long break duration: must be 1-60 minutes"},
		{"long break duration high", func(s *BreakSettings) { s.LongbreakDurationMinutes = 61 }, "invalid long break duration: must be 1-60 minutes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			tc.mutate(&settings)

			err := settings.Validate()
			require.Error(t, err)
			assert.EqualError(t, err, tc.message)
			assert.True(t, errors.Is(err, ErrInvalidSettings))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestValidateAcceptsRangeBoundaries(t *testing.T) {
	low := BreakSettings{
		MicrobreakIntervalMinutes:    1,
		MicrobreakDurationSeconds:    5,
		LongbreakIntervalMicrobreaks: 1,
		LongbreakDurationMinutes:     1,
	}
	high := BreakSettings{
		MicrobreakIntervalMinutes:    60,
		MicrobreakDurationSeconds:    300,
		LongbreakIntervalMicrobreaks: 10,
		LongbreakDurationMinutes:     60,
		FullscreenBreaks:             true,
	}
	assert.NoError(t, low.Validate())
	assert.NoError(t, high.Validate())
}

func TestBreakDurations(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, 20*time.Minute, settings.MicrobreakInterval())
	assert.Equal(t, 20*time.Second, settings.BreakDuration(BreakTypeMicrobreak))
	assert.Equal(t, 5*time.Minute, settings.BreakDuration(BreakTypeLongbreak))
}

func TestSchedulerStateTimeLeftAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	var empty SchedulerState
	assert.False(t, empty.Scheduled())
	assert.Zero(t, empty.ScheduledUnixMilli())
	assert.Zero(t, empty.TimeLeftAt(now))

	state := SchedulerState{ScheduledBreakTime: now.Add(90 * time.Second)}
	assert.Equal(t, now.Add(90*time.Second).UnixMilli(), state.ScheduledUnixMilli())
	assert.Equal(t, 90*time.Second, state.TimeLeftAt(now))
	assert.Zero(t, state.TimeLeftAt(now.Add(time.Hour)))
}
