package model

import "time"

// Status is the lifecycle state of a task. The numeric values are part of
// the API contract and stored as-is.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

// Known reports whether s is one of the defined status values.
func (s Status) Known() bool {
	return s >= StatusPending && s <= StatusCompleted
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Task represents a single tracked work item.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500" json:"description"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"-"`
	CompletedAt *time.Time `json:"completedAt"`
}

// DatesValid reports whether the completion timestamp, when present, is not
// earlier than the creation timestamp. Equal timestamps are valid; the
// comparison is at full precision, not date-only.
func (t *Task) DatesValid() bool {
	if t.CompletedAt == nil {
		return true
	}
	return !t.CompletedAt.Before(t.CreatedAt)
}
