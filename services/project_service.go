package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/repositories"
	"gorm.io/gorm"
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
	permissions *PermissionService
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		userRepo:    repositories.NewUserRepository(),
		permissions: NewPermissionService(),
	}
}

// CreateProject creates a project; the creator becomes its owner with an
// empty member set.
func (s *ProjectService) CreateProject(req dto.CreateProjectRequest, ownerID string) (models.Project, error) {
	if len(req.Name) < 3 {
		return models.Project{}, models.ValidationError("the project name must be at least 3 characters")
	}
	if len(req.Key) < 2 || len(req.Key) > 10 {
		return models.Project{}, models.ValidationError("the project key must be between 2 and 10 characters")
	}
	if !projectKeyPattern.MatchString(req.Key) {
		return models.Project{}, models.ValidationError("the project key may only contain uppercase letters and digits")
	}

	taken, err := s.projectRepo.ExistsByKey(req.Key)
	if err != nil {
		return models.Project{}, models.InternalError(err)
	}
	if taken {
		return models.Project{}, models.ValidationError("the project key is already in use")
	}

	project := models.Project{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	project, err = s.projectRepo.Create(project)
	if err != nil {
		return models.Project{}, models.InternalError(err)
	}
	return project, nil
}

// ListProjectsForUser returns every project the user owns or belongs to,
// annotated with the user's derived role.
func (s *ProjectService) ListProjectsForUser(userID string) ([]models.ProjectWithRole, error) {
	projects, err := s.projectRepo.FindForUser(userID)
	if err != nil {
		return nil, models.InternalError(err)
	}

	annotated := make([]models.ProjectWithRole, 0, len(projects))
	for _, p := range projects {
		annotated = append(annotated, p.WithRoleFor(userID))
	}
	return annotated, nil
}

// GetProject returns a single project the user can access, annotated
// with the user's derived role.
func (s *ProjectService) GetProject(projectID, userID string) (models.ProjectWithRole, error) {
	project, err := s.permissions.CanAccessProject(projectID, userID)
	if err != nil {
		return models.ProjectWithRole{}, err
	}
	return project.WithRoleFor(userID), nil
}

// UpdateProject patches project fields; owner only.
func (s *ProjectService) UpdateProject(projectID, userID string, req dto.UpdateProjectRequest) (models.Project, error) {
	if req.Name != nil && len(*req.Name) < 3 {
		return models.Project{}, models.ValidationError("the project name must be at least 3 characters")
	}

	project, err := s.permissions.IsProjectOwner(projectID, userID)
	if err != nil {
		return models.Project{}, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return project, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.projectRepo.Updates(projectID, fields); err != nil {
		return models.Project{}, models.InternalError(err)
	}

	project, err = s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, models.InternalError(err)
	}
	return project, nil
}

// DeleteProject hard-deletes a project; owner only. Tasks are not
// cascaded.
func (s *ProjectService) DeleteProject(projectID, userID string) error {
	if _, err := s.permissions.IsProjectOwner(projectID, userID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(projectID); err != nil {
		return models.InternalError(err)
	}
	return nil
}

// AddMember resolves a user by email and adds them to the member set;
// owner only. Re-adding an existing member is a no-op.
func (s *ProjectService) AddMember(projectID, ownerID string, req dto.AddMemberRequest) error {
	project, err := s.permissions.IsProjectOwner(projectID, ownerID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFoundError("user not found")
		}
		return models.InternalError(err)
	}

	// The owner already has full access; keep ownership and membership
	// disjoint.
	if user.ID == project.OwnerID {
		return models.ValidationError("the project owner cannot be added as a member")
	}

	if err := s.projectRepo.AddMember(project, user); err != nil {
		return models.InternalError(err)
	}
	return nil
}

// ListMembers returns the owner plus all members as public projections;
// any project participant may call this.
func (s *ProjectService) ListMembers(projectID, userID string) ([]models.UserData, error) {
	project, err := s.permissions.CanAccessProject(projectID, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(project.Members)+1)
	ids = append(ids, project.OwnerID)
	for _, m := range project.Members {
		ids = append(ids, m.ID)
	}

	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, models.InternalError(err)
	}

	members := make([]models.UserData, 0, len(users))
	for _, u := range users {
		members = append(members, u.PublicData())
	}
	return members, nil
}

// RemoveMember removes a user from the member set; owner only. Removing
// the owner is rejected; removing a non-member reports NOT_FOUND.
func (s *ProjectService) RemoveMember(projectID, ownerID, memberID string) error {
	if _, err := s.permissions.IsProjectOwner(projectID, ownerID); err != nil {
		return err
	}

	if memberID == ownerID {
		return models.ValidationError("the project owner cannot be removed")
	}

	affected, err := s.projectRepo.RemoveMember(projectID, memberID)
	if err != nil {
		return models.InternalError(err)
	}
	if affected == 0 {
		return models.NotFoundError("member not found in this project")
	}
	return nil
}
