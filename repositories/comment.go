package repositories

import (
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// CommentRepository handles database operations for comments
type CommentRepository struct{}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// FindByID retrieves a comment with its author loaded
func (r *CommentRepository) FindByID(id string) (models.Comment, error) {
	var comment models.Comment
	result := database.DB.Preload("User").First(&comment, "id = ?", id)
	return comment, result.Error
}

// FindByTaskID retrieves a task's comments, oldest first, authors loaded
func (r *CommentRepository) FindByTaskID(taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	result := database.DB.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&comments)
	return comments, result.Error
}

// Create inserts a new comment into the database
func (r *CommentRepository) Create(comment models.Comment) (models.Comment, error) {
	result := database.DB.Create(&comment)
	return comment, result.Error
}

// Updates applies a partial field update to a comment
func (r *CommentRepository) Updates(id string, fields map[string]interface{}) error {
	return database.DB.Model(&models.Comment{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a comment
func (r *CommentRepository) Delete(id string) error {
	return database.DB.Delete(&models.Comment{}, "id = ?", id).Error
}
