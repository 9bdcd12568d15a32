package model

import "time"

// BreakType identifies the kind of break. The empty value means no break.
type BreakType string

const (
	BreakTypeNone       BreakType = ""
	BreakTypeMicrobreak BreakType = "microbreak"
	BreakTypeLongbreak  BreakType = "longbreak"
)

// Label returns a human readable name.
func (breakType BreakType) Label() string {
	switch breakType {
	case BreakTypeMicrobreak:
		return "Microbreak"
	case BreakTypeLongbreak:
		return "Long break"
	default:
		return "Break"
	}
}

// BreakState is the cumulative break-cycle progress of a session.
type BreakState struct {
	BreakType                 BreakType
	BreakNumber               int
	MicrobreaksSinceLongbreak int
	IsPaused                  bool
	IsBreakActive             bool
	PostponeCount             int
	SkipCount                 int
}

// SchedulerState is the live projection of the next scheduled break.
type SchedulerState struct {
	ScheduledBreakTime time.Time
	CurrentBreakType   BreakType
	TimeLeft           time.Duration
	ScheduleID         string
}

// Scheduled reports whether a break time is set.
func (state SchedulerState) Scheduled() bool {
	return !state.ScheduledBreakTime.IsZero()
}

// ScheduledUnixMilli returns the scheduled time in milliseconds since the epoch, or 0.
func (state SchedulerState) ScheduledUnixMilli() int64 {
	if !state.Scheduled() {
		return 0
	}
	return state.ScheduledBreakTime.UnixMilli()
}

// TimeLeftAt computes the remaining time relative to now, floored at zero.
func (state SchedulerState) TimeLeftAt(now time.Time) time.Duration {
	if !state.Scheduled() {
		return 0
	}
	remaining := state.ScheduledBreakTime.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
