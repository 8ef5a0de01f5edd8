package repositories

import (
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// ImageRepository handles database operations for image metadata
type ImageRepository struct{}

// NewImageRepository creates a new image repository instance
func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

// FindByID retrieves an image by its ID
func (r *ImageRepository) FindByID(id string) (models.Image, error) {
	var image models.Image
	result := database.DB.First(&image, "id = ?", id)
	return image, result.Error
}

// FindByProjectID retrieves all images associated with a project
func (r *ImageRepository) FindByProjectID(projectID string) ([]models.Image, error) {
	var images []models.Image
	result := database.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&images)
	return images, result.Error
}

// FindByTaskID retrieves all images associated with a task
func (r *ImageRepository) FindByTaskID(taskID string) ([]models.Image, error) {
	var images []models.Image
	result := database.DB.Where("task_id = ?", taskID).Order("created_at desc").Find(&images)
	return images, result.Error
}

// FindByUploader retrieves all images uploaded by a user
func (r *ImageRepository) FindByUploader(userID string) ([]models.Image, error) {
	var images []models.Image
	result := database.DB.Where("uploaded_by = ?", userID).Order("created_at desc").Find(&images)
	return images, result.Error
}

// Create inserts a new image row into the database
func (r *ImageRepository) Create(image models.Image) (models.Image, error) {
	result := database.DB.Create(&image)
	return image, result.Error
}

// Updates applies a partial field update to an image
func (r *ImageRepository) Updates(id string, fields map[string]interface{}) error {
	return database.DB.Model(&models.Image{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes an image row
func (r *ImageRepository) Delete(id string) error {
	return database.DB.Delete(&models.Image{}, "id = ?", id).Error
}
