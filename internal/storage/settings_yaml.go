package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"restie/internal/core/model"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the file written under the application config directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	MicrobreakIntervalMinutes    int  `yaml:"microbreak_interval_minutes"`
	MicrobreakDurationSeconds    int  `yaml:"microbreak_duration_seconds"`
	LongbreakIntervalMicrobreaks int  `yaml:"longbreak_interval_microbreaks"`
	LongbreakDurationMinutes     int  `yaml:"longbreak_duration_minutes"`
	FullscreenBreaks             bool `yaml:"fullscreen_breaks"`
}

// SettingsStore keeps the current break settings and persists them as YAML.
// With an empty path it only holds them in memory.
type SettingsStore struct {
	mu       sync.RWMutex
	path     string
	settings model.BreakSettings
}

// NewSettingsStore returns a store holding the default settings.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{
		path:     path,
		settings: model.DefaultSettings(),
	}
}

// Path returns the backing file path.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads settings from disk. A missing file keeps the defaults.
func (store *SettingsStore) Load() error {
	if store.path == "" {
		return nil
	}

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return fmt.Errorf("parse settings yaml: %w", err)
	}

	store.mu.Lock()
	store.settings = applyYamlSettings(model.DefaultSettings(), fileData)
	store.mu.Unlock()
	return nil
}

// Settings returns the current settings.
func (store *SettingsStore) Settings() model.BreakSettings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// Update validates and replaces the settings, then persists them. Invalid
// settings are rejected and the previous ones kept. A persistence failure is
// returned after the in-memory replacement has happened.
func (store *SettingsStore) Update(settings model.BreakSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	store.mu.Lock()
	store.settings = settings
	store.mu.Unlock()

	return store.save(settings)
}

func (store *SettingsStore) save(settings model.BreakSettings) error {
	if store.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		MicrobreakIntervalMinutes:    settings.MicrobreakIntervalMinutes,
		MicrobreakDurationSeconds:    settings.MicrobreakDurationSeconds,
		LongbreakIntervalMicrobreaks: settings.LongbreakIntervalMicrobreaks,
		LongbreakDurationMinutes:     settings.LongbreakDurationMinutes,
		FullscreenBreaks:             settings.FullscreenBreaks,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// applyYamlSettings copies each stored value that passes validation on its
// own, keeping the current value for the rest. settings must be valid.
func applyYamlSettings(settings model.BreakSettings, fileData yamlSettings) model.BreakSettings {
	fields := []func(*model.BreakSettings){
		func(candidate *model.BreakSettings) {
			candidate.MicrobreakIntervalMinutes = fileData.MicrobreakIntervalMinutes
		},
		func(candidate *model.BreakSettings) {
			candidate.MicrobreakDurationSeconds = fileData.MicrobreakDurationSeconds
		},
		func(candidate *model.BreakSettings) {
			candidate.LongbreakIntervalMicrobreaks = fileData.LongbreakIntervalMicrobreaks
		},
		func(candidate *model.BreakSettings) {
			candidate.LongbreakDurationMinutes = fileData.LongbreakDurationMinutes
		},
	}
	for _, apply := range fields {
		candidate := settings
		apply(&candidate)
		if candidate.Validate() == nil {
			settings = candidate
		}
	}
	settings.FullscreenBreaks = fileData.FullscreenBreaks
	return settings
}
