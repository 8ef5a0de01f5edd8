package services

import (
	"errors"

	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/repositories"
	"gorm.io/gorm"
)

// Pure membership decisions. These take fully loaded entities so the
// rules can be evaluated (and tested) without touching storage.

// UserCanAccessProject reports whether the user is the project's owner or
// one of its members. This is the baseline check for reads and most
// writes on a project's tasks, comments and date ranges.
func UserCanAccessProject(project models.Project, userID string) bool {
	return project.OwnerID == userID || project.HasMember(userID)
}

// UserIsProjectOwner reports whether the user owns the project. Required
// for project update/delete and member management.
func UserIsProjectOwner(project models.Project, userID string) bool {
	return project.OwnerID == userID
}

// UserCanDeleteTask reports whether the user may delete the task: the
// project owner or the task's current assignee. Deliberately narrower
// than the update rule, which only requires project access.
func UserCanDeleteTask(project models.Project, task models.Task, userID string) bool {
	if project.OwnerID == userID {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == userID
}

// PermissionService loads a project and evaluates access against it.
// Lookup failure is reported as NOT_FOUND, never as a denial.
type PermissionService struct {
	projectRepo *repositories.ProjectRepository
}

// NewPermissionService creates a new permission service instance
func NewPermissionService() *PermissionService {
	return &PermissionService{
		projectRepo: repositories.NewProjectRepository(),
	}
}

// CanAccessProject returns the project when the user is its owner or a
// member, a FORBIDDEN error otherwise.
func (s *PermissionService) CanAccessProject(projectID, userID string) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, models.NotFoundError("project not found")
		}
		return models.Project{}, models.InternalError(err)
	}

	if !UserCanAccessProject(project, userID) {
		return models.Project{}, models.ForbiddenError("you do not have access to this project")
	}
	return project, nil
}

// IsProjectOwner returns the project when the user owns it, a FORBIDDEN
// error otherwise.
func (s *PermissionService) IsProjectOwner(projectID, userID string) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, models.NotFoundError("project not found")
		}
		return models.Project{}, models.InternalError(err)
	}

	if !UserIsProjectOwner(project, userID) {
		return models.Project{}, models.ForbiddenError("you are not the owner of this project")
	}
	return project, nil
}
