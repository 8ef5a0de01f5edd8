package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/realtime"
	"github.com/taskboard/backend/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks. Every mutation that
// passes its permission check broadcasts a change event through the hub;
// broadcasting is fire-and-forget and never affects the caller's result.
type TaskService struct {
	taskRepo      *repositories.TaskRepository
	dateRangeRepo *repositories.DateRangeRepository
	permissions   *PermissionService
	hub           *realtime.Hub
	logger        *zap.Logger
}

// NewTaskService creates a new task service instance
func NewTaskService(hub *realtime.Hub, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		taskRepo:      repositories.NewTaskRepository(),
		dateRangeRepo: repositories.NewDateRangeRepository(),
		permissions:   NewPermissionService(),
		hub:           hub,
		logger:        logger,
	}
}

func (s *TaskService) publish(event realtime.TaskEvent) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(event)
}

// CreateTask creates a task in a project. The caller must have access to
// the project; the created task is broadcast as TASK_CREATED.
func (s *TaskService) CreateTask(req dto.CreateTaskRequest, projectID, reporterID string) (models.Task, error) {
	if len(req.Title) < 3 {
		return models.Task{}, models.ValidationError("the title must be at least 3 characters")
	}
	hasDueDate := req.HasDueDate != nil && *req.HasDueDate
	if err := models.ValidateDates(hasDueDate, req.StartDate, req.EndDate); err != nil {
		return models.Task{}, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return models.Task{}, models.ValidationError("unknown task status")
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return models.Task{}, models.ValidationError("unknown task priority")
	}

	if _, err := s.permissions.CanAccessProject(projectID, reporterID); err != nil {
		return models.Task{}, err
	}

	assigneeID, err := parseOptionalUserID(req.AssigneeID)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusToDo,
		Priority:    models.PriorityMedium,
		AssigneeID:  assigneeID,
		ReporterID:  reporterID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		HasDueDate:  hasDueDate,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	task, err = s.taskRepo.Create(task)
	if err != nil {
		return models.Task{}, models.InternalError(err)
	}

	s.publish(realtime.TaskCreated(task))
	s.logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("project_id", projectID))

	return task, nil
}

// ListTasksForProject returns every task in a project the user can
// access.
func (s *TaskService) ListTasksForProject(projectID, userID string) ([]models.Task, error) {
	if _, err := s.permissions.CanAccessProject(projectID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByProjectID(projectID)
	if err != nil {
		return nil, models.InternalError(err)
	}
	return tasks, nil
}

// GetTaskByID returns a task when the user can access its project.
func (s *TaskService) GetTaskByID(taskID, userID string) (models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.NotFoundError("task not found")
		}
		return models.Task{}, models.InternalError(err)
	}

	if _, err := s.permissions.CanAccessProject(task.ProjectID, userID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// GetTaskWithDateRange returns a task together with its scheduling
// overlay, when one exists.
func (s *TaskService) GetTaskWithDateRange(taskID, userID string) (dto.TaskWithDateRange, error) {
	task, err := s.GetTaskByID(taskID, userID)
	if err != nil {
		return dto.TaskWithDateRange{}, err
	}

	result := dto.TaskWithDateRange{Task: task}
	dateRange, err := s.dateRangeRepo.FindByTaskID(taskID)
	if err == nil {
		result.DateRange = &dateRange
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TaskWithDateRange{}, models.InternalError(err)
	}
	return result, nil
}

// UpdateTask patches a task. Any project participant may update any
// task. Date consistency is validated against the merged current and
// incoming state before anything is written. The updated task is
// broadcast as TASK_UPDATED together with per-field change flags and the
// previous status.
func (s *TaskService) UpdateTask(taskID, userID string, req dto.UpdateTaskRequest) (models.Task, error) {
	if req.Title != nil && len(*req.Title) < 3 {
		return models.Task{}, models.ValidationError("the title must be at least 3 characters")
	}
	if req.Status != nil && !req.Status.Valid() {
		return models.Task{}, models.ValidationError("unknown task status")
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return models.Task{}, models.ValidationError("unknown task priority")
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.NotFoundError("task not found")
		}
		return models.Task{}, models.InternalError(err)
	}

	// Merge incoming and current state before checking the due-date
	// invariant, so an update cannot leave the task inconsistent.
	mergedHasDueDate := task.HasDueDate
	if req.HasDueDate != nil {
		mergedHasDueDate = *req.HasDueDate
	}
	mergedStart := task.StartDate
	if req.StartDate != nil {
		mergedStart = req.StartDate
	}
	mergedEnd := task.EndDate
	if req.EndDate.Set {
		mergedEnd = req.EndDate.Ptr()
	}
	if err := models.ValidateDates(mergedHasDueDate, mergedStart, mergedEnd); err != nil {
		return models.Task{}, err
	}

	if _, err := s.permissions.CanAccessProject(task.ProjectID, userID); err != nil {
		return models.Task{}, err
	}

	changes := realtime.TaskChanges{
		StatusChanged: req.Status != nil,
		UpdatedFields: realtime.UpdatedFields{
			Title:       req.Title != nil,
			Description: req.Description != nil,
			Status:      req.Status != nil,
			Priority:    req.Priority != nil,
			AssigneeID:  req.AssigneeID.Set,
			StartDate:   req.StartDate != nil,
			EndDate:     req.EndDate.Set,
			HasDueDate:  req.HasDueDate != nil,
		},
	}
	if req.Status != nil {
		previous := task.Status
		changes.PreviousStatus = &previous
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.AssigneeID.Set {
		assigneeID, err := parseOptionalUserID(req.AssigneeID.Ptr())
		if err != nil {
			return models.Task{}, err
		}
		if assigneeID != nil {
			fields["assignee_id"] = *assigneeID
		} else {
			// Null or empty clears the assignment.
			fields["assignee_id"] = nil
		}
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate.Set {
		fields["end_date"] = req.EndDate.Ptr()
	}
	if req.HasDueDate != nil {
		fields["has_due_date"] = *req.HasDueDate
	}

	if len(fields) == 0 {
		return task, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.taskRepo.Updates(taskID, fields); err != nil {
		return models.Task{}, models.InternalError(err)
	}

	updated, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return models.Task{}, models.InternalError(err)
	}

	s.publish(realtime.TaskUpdated(updated, changes))
	s.logger.Info("task updated",
		zap.String("task_id", taskID),
		zap.Bool("status_changed", changes.StatusChanged))

	return updated, nil
}

// DeleteTask removes a task. Only the project owner or the task's
// current assignee may delete it; a plain member who can update a task
// still cannot delete it. Deletion is broadcast as TASK_DELETED.
func (s *TaskService) DeleteTask(taskID, userID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFoundError("task not found")
		}
		return models.InternalError(err)
	}

	project, err := s.permissions.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFoundError("project not found")
		}
		return models.InternalError(err)
	}

	if !UserCanDeleteTask(project, task, userID) {
		return models.ForbiddenError("you do not have permission to delete this task")
	}

	affected, err := s.taskRepo.Delete(taskID)
	if err != nil {
		return models.InternalError(err)
	}
	if affected == 0 {
		return models.NotFoundError("the task could not be deleted, it may already have been removed")
	}

	s.publish(realtime.TaskDeleted(taskID, task.ProjectID))
	s.logger.Info("task deleted",
		zap.String("task_id", taskID),
		zap.String("project_id", task.ProjectID))

	return nil
}

// parseOptionalUserID validates an optional user ID string, rejecting
// malformed identifiers before they reach storage.
func parseOptionalUserID(raw *string) (*string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(*raw); err != nil {
		return nil, models.ValidationError("the assignee ID is not valid")
	}
	id := *raw
	return &id, nil
}
