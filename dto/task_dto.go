package dto

import (
	"time"

	"github.com/taskboard/backend/models"
)

// CreateTaskRequest creates a task in a project. Status and priority
// default to ToDo/Medium when omitted.
type CreateTaskRequest struct {
	Title       string               `json:"title" binding:"required,min=3"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	AssigneeID  *string              `json:"assigneeId"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	HasDueDate  *bool                `json:"hasDueDate"`
}

// UpdateTaskRequest patches a task. AssigneeID and EndDate are
// three-state: omitted leaves the current value, null clears it.
type UpdateTaskRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Status      *models.TaskStatus    `json:"status"`
	Priority    *models.TaskPriority  `json:"priority"`
	AssigneeID  Optional[string]      `json:"assigneeId"`
	StartDate   *time.Time            `json:"startDate"`
	EndDate     Optional[time.Time]   `json:"endDate"`
	HasDueDate  *bool                 `json:"hasDueDate"`
}

// TaskWithDateRange pairs a task with its optional scheduling overlay.
type TaskWithDateRange struct {
	Task      models.Task       `json:"task"`
	DateRange *models.DateRange `json:"dateRange,omitempty"`
}
