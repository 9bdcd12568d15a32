package history

import "time"

// Kind is the outcome recorded for a scheduled break.
type Kind string

const (
	KindDue       Kind = "due"
	KindSkipped   Kind = "skipped"
	KindPostponed Kind = "postponed"
	KindCompleted Kind = "completed"
)

type BreakRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ScheduleID string    `gorm:"size:36;index" json:"schedule_id"`
	Kind       Kind      `gorm:"not null;index" json:"kind"`
	BreakType  string    `gorm:"not null" json:"break_type"`
	At         time.Time `gorm:"not null;index" json:"at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Summary counts break outcomes over a period.
type Summary struct {
	Since     time.Time `json:"since"`
	Due       int64     `json:"due"`
	Completed int64     `json:"completed"`
	Skipped   int64     `json:"skipped"`
	Postponed int64     `json:"postponed"`
}
