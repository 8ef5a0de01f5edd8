package repositories

import (
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// DateRangeRepository handles database operations for task date ranges
type DateRangeRepository struct{}

// NewDateRangeRepository creates a new date range repository instance
func NewDateRangeRepository() *DateRangeRepository {
	return &DateRangeRepository{}
}

// FindByTaskID retrieves the date range for a task
func (r *DateRangeRepository) FindByTaskID(taskID string) (models.DateRange, error) {
	var dateRange models.DateRange
	result := database.DB.First(&dateRange, "task_id = ?", taskID)
	return dateRange, result.Error
}

// FindByTaskIDs retrieves date ranges for the given tasks
func (r *DateRangeRepository) FindByTaskIDs(taskIDs []string) ([]models.DateRange, error) {
	var ranges []models.DateRange
	result := database.DB.Where("task_id IN ?", taskIDs).Find(&ranges)
	return ranges, result.Error
}

// Create inserts a new date range into the database
func (r *DateRangeRepository) Create(dateRange models.DateRange) (models.DateRange, error) {
	result := database.DB.Create(&dateRange)
	return dateRange, result.Error
}

// UpdatesByTaskID applies a partial field update to a task's date range
func (r *DateRangeRepository) UpdatesByTaskID(taskID string, fields map[string]interface{}) error {
	return database.DB.Model(&models.DateRange{}).Where("task_id = ?", taskID).Updates(fields).Error
}

// DeleteByTaskID removes a task's date range
func (r *DateRangeRepository) DeleteByTaskID(taskID string) error {
	return database.DB.Delete(&models.DateRange{}, "task_id = ?", taskID).Error
}
