package repositories

import (
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindByID retrieves a project with its members loaded
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := database.DB.Preload("Members").First(&project, "id = ?", id)
	return project, result.Error
}

// FindForUser retrieves every project the user owns or is a member of
func (r *ProjectRepository) FindForUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	result := database.DB.
		Preload("Members").
		Where("owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?)", userID, userID).
		Order("created_at desc").
		Find(&projects)
	return projects, result.Error
}

// ExistsByKey checks whether a project key is already taken
func (r *ProjectRepository) ExistsByKey(key string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Project{}).Where("key = ?", key).Count(&count).Error
	return count > 0, err
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project models.Project) (models.Project, error) {
	result := database.DB.Create(&project)
	return project, result.Error
}

// Updates applies a partial field update to a project
func (r *ProjectRepository) Updates(id string, fields map[string]interface{}) error {
	return database.DB.Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a project. Tasks are intentionally not cascaded.
func (r *ProjectRepository) Delete(id string) error {
	return database.DB.Delete(&models.Project{}, "id = ?", id).Error
}

// AddMember adds a user to the project's member set. Appending an
// existing member is a no-op.
func (r *ProjectRepository) AddMember(project models.Project, user models.User) error {
	return database.DB.Model(&project).Association("Members").Append(&user)
}

// RemoveMember removes a user from the member set and reports how many
// rows were affected, so callers can detect removal of a non-member.
func (r *ProjectRepository) RemoveMember(projectID, userID string) (int64, error) {
	result := database.DB.Exec(
		"DELETE FROM project_members WHERE project_id = ? AND user_id = ?",
		projectID, userID,
	)
	return result.RowsAffected, result.Error
}
