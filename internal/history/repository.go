package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Repository handles all database operations for break records
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a break record, assigning an ID when missing
func (r *Repository) Create(record *BreakRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	result := r.db.Create(record)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert break record")
	}
	return nil
}

// ListSince returns records at or after since, oldest first
func (r *Repository) ListSince(since time.Time) ([]*BreakRecord, error) {
	var records []*BreakRecord
	result := r.db.Where("at >= ?", since).Order("at ASC").Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query break records")
	}
	return records, nil
}

// ListBySchedule returns every record of one scheduling epoch
func (r *Repository) ListBySchedule(scheduleID string) ([]*BreakRecord, error) {
	var records []*BreakRecord
	result := r.db.Where("schedule_id = ?", scheduleID).Order("at ASC").Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query schedule records")
	}
	return records, nil
}

// SummarySince aggregates outcome counts since a given time
func (r *Repository) SummarySince(since time.Time) (Summary, error) {
	var rows []struct {
		Kind  Kind
		Count int64
	}
	result := r.db.Model(&BreakRecord{}).
		Select("kind, COUNT(*) as count").
		Where("at >= ?", since).
		Group("kind").
		Scan(&rows)
	if result.Error != nil {
		return Summary{}, errors.Wrap(result.Error, "failed to query break summary")
	}

	summary := Summary{Since: since}
	for _, row := range rows {
		switch row.Kind {
		case KindDue:
			summary.Due = row.Count
		case KindCompleted:
			summary.Completed = row.Count
		case KindSkipped:
			summary.Skipped = row.Count
		case KindPostponed:
			summary.Postponed = row.Count
		}
	}
	return summary, nil
}

// DeleteBefore removes records older than before
func (r *Repository) DeleteBefore(before time.Time) (int64, error) {
	result := r.db.Where("at < ?", before).Delete(&BreakRecord{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old break records")
	}
	return result.RowsAffected, nil
}
