package repositories

import (
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "email = ?", email)
	return user, result.Error
}

// FindByIDs retrieves all users matching the given IDs
func (r *UserRepository) FindByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	result := database.DB.Where("id IN ?", ids).Find(&users)
	return users, result.Error
}

// CountByEmailOrUsername counts users matching either credential,
// excluding soft matches against the given user ID
func (r *UserRepository) CountByEmailOrUsername(email, username, excludeID string) (int64, error) {
	var count int64
	query := database.DB.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user models.User) (models.User, error) {
	result := database.DB.Create(&user)
	return user, result.Error
}

// Updates applies a partial field update to a user
func (r *UserRepository) Updates(id string, fields map[string]interface{}) error {
	return database.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}
