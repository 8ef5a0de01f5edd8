package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/realtime"
)

// taskTestFixture wires a project with an owner, a plain member, and a
// user outside the project.
type taskTestFixture struct {
	owner    models.UserData
	member   models.UserData
	stranger models.UserData
	project  models.Project
	hub      *realtime.Hub
	tasks    *TaskService
}

func newTaskFixture(t *testing.T) taskTestFixture {
	t.Helper()
	setupTestDB(t)

	owner := createTestUser(t, "ownerusr", "owner@example.com")
	member := createTestUser(t, "memberusr", "member@example.com")
	stranger := createTestUser(t, "stranger1", "stranger@example.com")

	projects := NewProjectService()
	project := createTestProject(t, projects, owner.ID, "Board", "BRD")
	if err := projects.AddMember(project.ID, owner.ID, dto.AddMemberRequest{Email: member.Email}); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	hub := realtime.NewHub(nil)
	return taskTestFixture{
		owner:    owner,
		member:   member,
		stranger: stranger,
		project:  project,
		hub:      hub,
		tasks:    NewTaskService(hub, nil),
	}
}

// receiveEvent waits for one hub payload and decodes it.
func receiveEvent(t *testing.T, events <-chan []byte) realtime.TaskEvent {
	t.Helper()
	select {
	case payload := <-events:
		var event realtime.TaskEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("failed to decode event payload: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an event")
		return realtime.TaskEvent{}
	}
}

func TestCreateTaskDefaultsAndEvent(t *testing.T) {
	f := newTaskFixture(t)
	events, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Set up CI"}, f.project.ID, f.member.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if task.Status != models.StatusToDo {
		t.Errorf("status = %q, want %q", task.Status, models.StatusToDo)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want %q", task.Priority, models.PriorityMedium)
	}
	if task.ReporterID != f.member.ID {
		t.Errorf("reporter = %q, want %q", task.ReporterID, f.member.ID)
	}

	event := receiveEvent(t, events)
	if event.EventType != realtime.EventTaskCreated {
		t.Errorf("event type = %q, want %q", event.EventType, realtime.EventTaskCreated)
	}
	if event.Task == nil || event.Task.ID != task.ID {
		t.Errorf("event task does not match the created task")
	}
}

func TestCreateTaskPermissions(t *testing.T) {
	f := newTaskFixture(t)

	if _, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Nope"}, f.project.ID, f.stranger.ID); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Errorf("expected a forbidden error for a stranger, got %v", err)
	}
	if _, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Nope"}, "00000000-0000-0000-0000-000000000000", f.owner.ID); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("expected a not found error for a missing project, got %v", err)
	}
}

func TestCreateTaskDateInvariant(t *testing.T) {
	f := newTaskFixture(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	tests := []struct {
		name    string
		req     dto.CreateTaskRequest
		wantErr bool
	}{
		{"flag without end date", dto.CreateTaskRequest{Title: "Bad", HasDueDate: boolPtr(true)}, true},
		{"end date without flag", dto.CreateTaskRequest{Title: "Bad", EndDate: &end}, true},
		{"start after end", dto.CreateTaskRequest{Title: "Bad", HasDueDate: boolPtr(true), StartDate: &end, EndDate: &start}, true},
		{"consistent dates", dto.CreateTaskRequest{Title: "Good", HasDueDate: boolPtr(true), StartDate: &start, EndDate: &end}, false},
		{"no dates at all", dto.CreateTaskRequest{Title: "Good"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.CreateTask(tt.req, f.project.ID, f.owner.ID)
			if tt.wantErr && !models.IsCode(err, models.ErrCodeInvalid) {
				t.Errorf("expected a validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateTaskStatusEvent(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Ship it"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	events, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	updated, err := f.tasks.UpdateTask(task.ID, f.member.ID, dto.UpdateTaskRequest{
		Status: statusPtr(models.StatusInProgress),
	})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusInProgress)
	}

	event := receiveEvent(t, events)
	if event.EventType != realtime.EventTaskUpdated {
		t.Fatalf("event type = %q, want %q", event.EventType, realtime.EventTaskUpdated)
	}
	if event.Changes == nil {
		t.Fatal("expected changes on an update event")
	}
	if !event.Changes.StatusChanged {
		t.Error("expected status_changed to be true")
	}
	if event.Changes.PreviousStatus == nil || *event.Changes.PreviousStatus != models.StatusToDo {
		t.Errorf("previous status = %v, want %q", event.Changes.PreviousStatus, models.StatusToDo)
	}
	if !event.Changes.UpdatedFields.Status {
		t.Error("expected the status field to be flagged as updated")
	}
	if event.Changes.UpdatedFields.Title {
		t.Error("did not expect the title field to be flagged")
	}
}

func TestUpdateTaskMergedDateValidation(t *testing.T) {
	f := newTaskFixture(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{
		Title:      "Scheduled work",
		HasDueDate: boolPtr(true),
		StartDate:  &start,
		EndDate:    &end,
	}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	// Clearing the end date while the flag stays set breaks the invariant.
	_, err = f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{
		EndDate: dto.Optional[time.Time]{Set: true, Valid: false},
	})
	if !models.IsCode(err, models.ErrCodeInvalid) {
		t.Errorf("expected a validation error when clearing only the end date, got %v", err)
	}

	// Moving the start past the current end is rejected against merged state.
	late := end.AddDate(0, 0, 1)
	_, err = f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{StartDate: &late})
	if !models.IsCode(err, models.ErrCodeInvalid) {
		t.Errorf("expected a validation error for start after end, got %v", err)
	}

	// Clearing the flag and the end date together is consistent.
	updated, err := f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{
		HasDueDate: boolPtr(false),
		EndDate:    dto.Optional[time.Time]{Set: true, Valid: false},
	})
	if err != nil {
		t.Fatalf("failed to clear the due date: %v", err)
	}
	if updated.HasDueDate || updated.EndDate != nil {
		t.Errorf("expected the due date to be cleared, got flag=%v end=%v", updated.HasDueDate, updated.EndDate)
	}
}

func TestUpdateTaskAssigneeThreeState(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Triage"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	// Assign.
	updated, err := f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{
		AssigneeID: dto.Optional[string]{Set: true, Valid: true, Value: f.member.ID},
	})
	if err != nil {
		t.Fatalf("failed to assign: %v", err)
	}
	if updated.AssigneeID == nil || *updated.AssigneeID != f.member.ID {
		t.Fatalf("assignee = %v, want %q", updated.AssigneeID, f.member.ID)
	}

	// Omitted field leaves the assignee alone.
	updated, err = f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{Title: strPtr("Triage again")})
	if err != nil {
		t.Fatalf("failed to update title: %v", err)
	}
	if updated.AssigneeID == nil || *updated.AssigneeID != f.member.ID {
		t.Errorf("assignee changed by an unrelated update: %v", updated.AssigneeID)
	}

	// Explicit null clears it.
	updated, err = f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{
		AssigneeID: dto.Optional[string]{Set: true, Valid: false},
	})
	if err != nil {
		t.Fatalf("failed to clear assignee: %v", err)
	}
	if updated.AssigneeID != nil {
		t.Errorf("assignee = %v, want nil", updated.AssigneeID)
	}

	// A malformed ID is rejected.
	_, err = f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{
		AssigneeID: dto.Optional[string]{Set: true, Valid: true, Value: "not-a-uuid"},
	})
	if !models.IsCode(err, models.ErrCodeInvalid) {
		t.Errorf("expected a validation error for a malformed assignee, got %v", err)
	}
}

func TestTaskUpdateDeleteAsymmetry(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Review PR"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	// A plain member can update the task.
	if _, err := f.tasks.UpdateTask(task.ID, f.member.ID, dto.UpdateTaskRequest{Title: strPtr("Review the PR")}); err != nil {
		t.Fatalf("member could not update the task: %v", err)
	}

	// The same member cannot delete it.
	if err := f.tasks.DeleteTask(task.ID, f.member.ID); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Fatalf("expected a forbidden error for a member delete, got %v", err)
	}

	// Once assigned, the member may delete it.
	if _, err := f.tasks.UpdateTask(task.ID, f.owner.ID, dto.UpdateTaskRequest{
		AssigneeID: dto.Optional[string]{Set: true, Valid: true, Value: f.member.ID},
	}); err != nil {
		t.Fatalf("failed to assign the task: %v", err)
	}

	events, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	if err := f.tasks.DeleteTask(task.ID, f.member.ID); err != nil {
		t.Fatalf("assignee could not delete the task: %v", err)
	}

	event := receiveEvent(t, events)
	if event.EventType != realtime.EventTaskDeleted {
		t.Errorf("event type = %q, want %q", event.EventType, realtime.EventTaskDeleted)
	}
	if event.TaskID != task.ID || event.ProjectID != f.project.ID {
		t.Errorf("event ids = (%q, %q), want (%q, %q)", event.TaskID, event.ProjectID, task.ID, f.project.ID)
	}

	if _, err := f.tasks.GetTaskByID(task.ID, f.owner.ID); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("expected the deleted task to be gone, got %v", err)
	}
}

func TestGetTaskResolutionOrder(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Hidden"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	// A missing task reports not found before any permission check.
	if _, err := f.tasks.GetTaskByID("00000000-0000-0000-0000-000000000000", f.stranger.ID); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("expected a not found error, got %v", err)
	}

	// An existing task outside the caller's projects is forbidden.
	if _, err := f.tasks.GetTaskByID(task.ID, f.stranger.ID); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Errorf("expected a forbidden error, got %v", err)
	}
}

func TestGetTaskWithDateRange(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Planned"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	// No overlay yet.
	full, err := f.tasks.GetTaskWithDateRange(task.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to fetch task: %v", err)
	}
	if full.DateRange != nil {
		t.Errorf("expected no date range, got %+v", full.DateRange)
	}

	ranges := NewDateRangeService()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	if _, err := ranges.SetDateRange(task.ID, f.owner.ID, dto.SetDateRangeRequest{StartDate: start, EndDate: end}); err != nil {
		t.Fatalf("failed to set date range: %v", err)
	}

	full, err = f.tasks.GetTaskWithDateRange(task.ID, f.member.ID)
	if err != nil {
		t.Fatalf("failed to fetch task with range: %v", err)
	}
	if full.DateRange == nil {
		t.Fatal("expected a date range on the task")
	}
	if !full.DateRange.StartDate.Equal(start) || !full.DateRange.EndDate.Equal(end) {
		t.Errorf("range = (%v, %v), want (%v, %v)", full.DateRange.StartDate, full.DateRange.EndDate, start, end)
	}
}
