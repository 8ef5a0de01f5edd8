package services

import (
	"errors"
	"time"

	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/repositories"
	"gorm.io/gorm"
)

// DateRangeService handles the scheduling overlay attached to tasks.
// A task has at most one date range and every operation is gated by
// access to the task's project.
type DateRangeService struct {
	dateRangeRepo *repositories.DateRangeRepository
	taskRepo      *repositories.TaskRepository
	permissions   *PermissionService
}

// NewDateRangeService creates a new date range service instance
func NewDateRangeService() *DateRangeService {
	return &DateRangeService{
		dateRangeRepo: repositories.NewDateRangeRepository(),
		taskRepo:      repositories.NewTaskRepository(),
		permissions:   NewPermissionService(),
	}
}

func (s *DateRangeService) taskProjectAccess(taskID, userID string) (models.Task, error) {
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

// SetDateRange creates or replaces the date range for a task.
func (s *DateRangeService) SetDateRange(taskID, userID string, req dto.SetDateRangeRequest) (models.DateRange, error) {
	if !req.StartDate.Before(req.EndDate) {
		return models.DateRange{}, models.ValidationError("the start date must be before the end date")
	}

	if _, err := s.taskProjectAccess(taskID, userID); err != nil {
		return models.DateRange{}, err
	}

	existing, err := s.dateRangeRepo.FindByTaskID(taskID)
	switch {
	case err == nil:
		fields := map[string]interface{}{
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
			"updated_at": time.Now(),
		}
		if err := s.dateRangeRepo.UpdatesByTaskID(taskID, fields); err != nil {
			return models.DateRange{}, models.InternalError(err)
		}
		existing.StartDate = req.StartDate
		existing.EndDate = req.EndDate
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		dateRange := models.DateRange{
			TaskID:    taskID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}
		dateRange, err := s.dateRangeRepo.Create(dateRange)
		if err != nil {
			return models.DateRange{}, models.InternalError(err)
		}
		return dateRange, nil
	default:
		return models.DateRange{}, models.InternalError(err)
	}
}

// GetDateRange returns the date range attached to a task.
func (s *DateRangeService) GetDateRange(taskID, userID string) (models.DateRange, error) {
	if _, err := s.taskProjectAccess(taskID, userID); err != nil {
		return models.DateRange{}, err
	}

	dateRange, err := s.dateRangeRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DateRange{}, models.NotFoundError("this task has no date range")
		}
		return models.DateRange{}, models.InternalError(err)
	}
	return dateRange, nil
}

// UpdateDateRange patches the start or end of an existing date range.
// The result must still be a valid range.
func (s *DateRangeService) UpdateDateRange(taskID, userID string, req dto.UpdateDateRangeRequest) (models.DateRange, error) {
	if req.StartDate == nil && req.EndDate == nil {
		return models.DateRange{}, models.ValidationError("at least one date must be provided")
	}

	if _, err := s.taskProjectAccess(taskID, userID); err != nil {
		return models.DateRange{}, err
	}

	dateRange, err := s.dateRangeRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DateRange{}, models.NotFoundError("this task has no date range")
		}
		return models.DateRange{}, models.InternalError(err)
	}

	start := dateRange.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := dateRange.EndDate
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if !start.Before(end) {
		return models.DateRange{}, models.ValidationError("the start date must be before the end date")
	}

	fields := map[string]interface{}{}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	fields["updated_at"] = time.Now()

	if err := s.dateRangeRepo.UpdatesByTaskID(taskID, fields); err != nil {
		return models.DateRange{}, models.InternalError(err)
	}

	dateRange.StartDate = start
	dateRange.EndDate = end
	return dateRange, nil
}

// DeleteDateRange removes a task's date range if it has one. Removing a
// range that does not exist is not an error.
func (s *DateRangeService) DeleteDateRange(taskID, userID string) error {
	if _, err := s.taskProjectAccess(taskID, userID); err != nil {
		return err
	}

	if err := s.dateRangeRepo.DeleteByTaskID(taskID); err != nil {
		return models.InternalError(err)
	}
	return nil
}

// ListDateRangesForProject returns the date ranges of every task in a
// project the user can access.
func (s *DateRangeService) ListDateRangesForProject(projectID, userID string) ([]models.DateRange, error) {
	if _, err := s.permissions.CanAccessProject(projectID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByProjectID(projectID)
	if err != nil {
		return nil, models.InternalError(err)
	}
	if len(tasks) == 0 {
		return []models.DateRange{}, nil
	}

	taskIDs := make([]string, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	ranges, err := s.dateRangeRepo.FindByTaskIDs(taskIDs)
	if err != nil {
		return nil, models.InternalError(err)
	}
	return ranges, nil
}
