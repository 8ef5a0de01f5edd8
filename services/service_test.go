package services

import (
	"testing"

	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory sqlite
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		sqlDB.Close()
	})
}

// createTestUser registers a user and returns their public data.
func createTestUser(t *testing.T, username, email string) models.UserData {
	t.Helper()

	user, err := Register(dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("failed to register user %s: %v", username, err)
	}
	return user
}

// createTestProject creates a project owned by ownerID.
func createTestProject(t *testing.T, s *ProjectService, ownerID, name, key string) models.Project {
	t.Helper()

	project, err := s.CreateProject(dto.CreateProjectRequest{Name: name, Key: key}, ownerID)
	if err != nil {
		t.Fatalf("failed to create project %s: %v", key, err)
	}
	return project
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }
