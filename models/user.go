package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents user role types. Roles are informational; project access
// is decided by ownership and membership, not by role.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleMember         Role = "member"
	RoleViewer         Role = "viewer"
)

// User represents a user in the system
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed in JSON
	FirstName *string   `json:"firstName" gorm:"default:null"`
	LastName  *string   `json:"lastName" gorm:"default:null"`
	Bio       *string   `json:"bio" gorm:"default:null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:'member'"`
	Avatar    *string   `json:"avatar" gorm:"default:null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID so the model works on any SQL backend.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserData is the public projection of a user, safe to embed in API
// responses and member listings.
type UserData struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      Role    `json:"role,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// PublicData converts a user to its public projection.
func (u User) PublicData() UserData {
	return UserData{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
		Avatar:    u.Avatar,
	}
}
