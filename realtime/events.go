package realtime

import "github.com/taskboard/backend/models"

// EventType identifies the kind of task change being broadcast.
type EventType string

const (
	EventTaskCreated EventType = "TASK_CREATED"
	EventTaskUpdated EventType = "TASK_UPDATED"
	EventTaskDeleted EventType = "TASK_DELETED"
)

// UpdatedFields flags which task fields were present in an update request.
type UpdatedFields struct {
	Title       bool `json:"title"`
	Description bool `json:"description"`
	Status      bool `json:"status"`
	Priority    bool `json:"priority"`
	AssigneeID  bool `json:"assignee_id"`
	StartDate   bool `json:"start_date"`
	EndDate     bool `json:"end_date"`
	HasDueDate  bool `json:"has_due_date"`
}

// TaskChanges describes an update so subscribers can tell a status
// transition apart from other edits.
type TaskChanges struct {
	StatusChanged  bool               `json:"status_changed"`
	PreviousStatus *models.TaskStatus `json:"previous_status,omitempty"`
	UpdatedFields  UpdatedFields      `json:"updated_fields"`
}

// TaskEvent is the payload delivered to every subscribed session.
type TaskEvent struct {
	EventType EventType    `json:"event_type"`
	Task      *models.Task `json:"task,omitempty"`
	TaskID    string       `json:"task_id,omitempty"`
	ProjectID string       `json:"project_id,omitempty"`
	Changes   *TaskChanges `json:"changes,omitempty"`
}

// TaskCreated builds the event for a newly created task.
func TaskCreated(task models.Task) TaskEvent {
	return TaskEvent{EventType: EventTaskCreated, Task: &task}
}

// TaskUpdated builds the event for an updated task.
func TaskUpdated(task models.Task, changes TaskChanges) TaskEvent {
	return TaskEvent{EventType: EventTaskUpdated, Task: &task, Changes: &changes}
}

// TaskDeleted builds the event for a deleted task.
func TaskDeleted(taskID, projectID string) TaskEvent {
	return TaskEvent{EventType: EventTaskDeleted, TaskID: taskID, ProjectID: projectID}
}
