package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"restie/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "missing", SettingsFileName))

	require.NoError(t, store.Load())
	assert.Equal(t, model.DefaultSettings(), store.Settings())
}

func TestUpdatePersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Restie", SettingsFileName)
	store := NewSettingsStore(path)

	updated := model.BreakSettings{
		MicrobreakIntervalMinutes:    25,
		MicrobreakDurationSeconds:    30,
		LongbreakIntervalMicrobreaks: 3,
		LongbreakDurationMinutes:     10,
		FullscreenBreaks:             true,
	}
	require.NoError(t, store.Update(updated))
	assert.Equal(t, updated, store.Settings())

	reloaded := NewSettingsStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, updated, reloaded.Settings())
}

func TestUpdateRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	store := NewSettingsStore(path)

	invalid := model.DefaultSettings()
	invalid.MicrobreakDurationSeconds = 1

	err := store.Update(invalid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidSettings))
	assert.Equal(t, model.DefaultSettings(), store.Settings())

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestLoadIgnoresOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	content := []byte("microbreak_interval_minutes: 90\nmicrobreak_duration_seconds: 45\nlongbreak_interval_microbreaks: 0\nlongbreak_duration_minutes: 15\nfullscreen_breaks: true\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	store := NewSettingsStore(path)
	require.NoError(t, store.Load())

	settings := store.Settings()
	assert.Equal(t, 20, settings.MicrobreakIntervalMinutes)
	assert.Equal(t, 45, settings.MicrobreakDurationSeconds)
	assert.Equal(t, 4, settings.LongbreakIntervalMicrobreaks)
	assert.Equal(t, 15, settings.LongbreakDurationMinutes)
	assert.True(t, settings.FullscreenBreaks)
	assert.NoError(t, settings.Validate())
}

func TestLoadAcceptsRangeBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    model.BreakSettings
	}{
		{
			name:    "lower",
			content: "microbreak_interval_minutes: 1\nmicrobreak_duration_seconds: 5\nlongbreak_interval_microbreaks: 1\nlongbreak_duration_minutes: 1\n",
			want:    model.BreakSettings{MicrobreakIntervalMinutes: 1, MicrobreakDurationSeconds: 5, LongbreakIntervalMicrobreaks: 1, LongbreakDurationMinutes: 1},
		},
		{
			name:    "upper",
			content: "microbreak_interval_minutes: 60\nmicrobreak_duration_seconds: 300\nlongbreak_interval_microbreaks: 10\nlongbreak_duration_minutes: 60\n",
			want:    model.BreakSettings{MicrobreakIntervalMinutes: 60, MicrobreakDurationSeconds: 300, LongbreakIntervalMicrobreaks: 10, LongbreakDurationMinutes: 60},
		},
		{
			name:    "just outside",
			content: "microbreak_interval_minutes: 61\nmicrobreak_duration_seconds: 4\nlongbreak_interval_microbreaks: 11\nlongbreak_duration_minutes: 0\n",
			want:    model.DefaultSettings(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			store := NewSettingsStore(path)
			require.NoError(t, store.Load())
			assert.Equal(t, tc.want, store.Settings())
		})
	}
}

func TestLoadReportsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("microbreak_interval_minutes: [oops"), 0o644))

	store := NewSettingsStore(path)
	err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, model.DefaultSettings(), store.Settings())
}

func TestInMemoryStoreSkipsDisk(t *testing.T) {
	store := NewSettingsStore("")
	require.NoError(t, store.Load())

	updated := model.DefaultSettings()
	updated.LongbreakDurationMinutes = 12
	require.NoError(t, store.Update(updated))
	assert.Equal(t, updated, store.Settings())
}
