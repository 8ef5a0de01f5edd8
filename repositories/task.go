package repositories

import (
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// FindByID retrieves a task by its ID
func (r *TaskRepository) FindByID(id string) (models.Task, error) {
	var task models.Task
	result := database.DB.First(&task, "id = ?", id)
	return task, result.Error
}

// FindByProjectID retrieves all tasks in a project
func (r *TaskRepository) FindByProjectID(projectID string) ([]models.Task, error) {
	var tasks []models.Task
	result := database.DB.Where("project_id = ?", projectID).Order("created_at asc").Find(&tasks)
	return tasks, result.Error
}

// Create inserts a new task into the database
func (r *TaskRepository) Create(task models.Task) (models.Task, error) {
	result := database.DB.Create(&task)
	return task, result.Error
}

// Updates applies a partial field update to a task
func (r *TaskRepository) Updates(id string, fields map[string]interface{}) error {
	return database.DB.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a task and reports how many rows were affected
func (r *TaskRepository) Delete(id string) (int64, error) {
	result := database.DB.Delete(&models.Task{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
