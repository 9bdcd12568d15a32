package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings is matched by every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// BreakSettings holds the user-tunable break configuration.
type BreakSettings struct {
	MicrobreakIntervalMinutes    int
	MicrobreakDurationSeconds    int
	LongbreakIntervalMicrobreaks int
	LongbreakDurationMinutes     int
	FullscreenBreaks             bool
}

// DefaultSettings returns the settings used until the user changes them.
func DefaultSettings() BreakSettings {
	return BreakSettings{
		MicrobreakIntervalMinutes:    20,
		MicrobreakDurationSeconds:    20,
		LongbreakIntervalMicrobreaks: 4,
		LongbreakDurationMinutes:     5,
		FullscreenBreaks:             false,
	}
}

// ValidationError describes a settings field outside its allowed range.
type ValidationError struct {
	Field string
	Unit  string
	Min   int
	Max   int
	Value int
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: must be %d-%d %s", err.Field, err.Min, err.Max, err.Unit)
}

// Is reports ErrInvalidSettings as a match.
func (err *ValidationError) Is(target error) bool {
	return target == ErrInvalidSettings
}

type settingsRange struct {
	field string
	unit  string
	min   int
	max   int
	value func(BreakSettings) int
}

var settingsRanges = []settingsRange{
	{"microbreak interval", "minutes", 1, 60, func(s BreakSettings) int { return s.MicrobreakIntervalMinutes }},
	{"microbreak duration", "seconds", 5, 300, func(s BreakSettings) int { return s.MicrobreakDurationSeconds }},
	{"long break interval", "microbreaks", 1, 10, func(s BreakSettings) int { return s.LongbreakIntervalMicrobreaks }},
	{"long break duration", "minutes", 1, 60, func(s BreakSettings) int { return s.LongbreakDurationMinutes }},
}

// Validate checks every numeric field against its range and reports the first violation.
func (settings BreakSettings) Validate() error {
	for _, bounds := range settingsRanges {
		value := bounds.value(settings)
		if value < bounds.min || value > bounds.max {
			return &ValidationError{
				Field: bounds.field,
				Unit:  bounds.unit,
				Min:   bounds.min,
				Max:   bounds.max,
				Value: value,
			}
		}
	}
	return nil
}

// MicrobreakInterval is the work time between microbreaks.
func (settings BreakSettings) MicrobreakInterval() time.Duration {
	return time.Duration(settings.MicrobreakIntervalMinutes) * time.Minute
}

// MicrobreakDuration is how long a microbreak lasts.
func (settings BreakSettings) MicrobreakDuration() time.Duration {
	return time.Duration(settings.MicrobreakDurationSeconds) * time.Second
}

// LongbreakDuration is how long a longbreak lasts. The scheduler also uses it
// as the wait before a longbreak.
func (settings BreakSettings) LongbreakDuration() time.Duration {
	return time.Duration(settings.LongbreakDurationMinutes) * time.Minute
}

// BreakDuration returns the length of a break of the given type.
func (settings BreakSettings) BreakDuration(breakType BreakType) time.Duration {
	if breakType == BreakTypeLongbreak {
		return settings.LongbreakDuration()
	}
	return settings.MicrobreakDuration()
}
