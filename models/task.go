package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "ToDo"
	StatusInProgress TaskStatus = "InProgress"
	StatusDone       TaskStatus = "Done"
	StatusCancelled  TaskStatus = "Cancelled"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task represents a work item inside a project. ProjectID and ReporterID
// are immutable after creation.
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID   string       `json:"projectId" gorm:"type:uuid;not null;index"`
	Title       string       `json:"title" gorm:"not null"`
	Description *string      `json:"description" gorm:"default:null"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);default:'ToDo'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);default:'Medium'"`
	AssigneeID  *string      `json:"assigneeId" gorm:"type:uuid;default:null;index"`
	ReporterID  string       `json:"reporterId" gorm:"type:uuid;not null"`
	StartDate   *time.Time   `json:"startDate" gorm:"default:null"`
	EndDate     *time.Time   `json:"endDate" gorm:"default:null"`
	HasDueDate  bool         `json:"hasDueDate" gorm:"default:false"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ValidateDates enforces the due-date invariant: HasDueDate requires an
// end date, no end date may be set without HasDueDate, and the start date
// must precede the end date when both are present.
func ValidateDates(hasDueDate bool, startDate, endDate *time.Time) error {
	if hasDueDate && endDate == nil {
		return ValidationError("an end date is required when the due date flag is set")
	}
	if !hasDueDate && endDate != nil {
		return ValidationError("an end date cannot be set without the due date flag")
	}
	if startDate != nil && endDate != nil && !startDate.Before(*endDate) {
		return ValidationError("the start date must be before the end date")
	}
	return nil
}
