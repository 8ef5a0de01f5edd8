package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a project container. The owner holds administrative
// rights; members get read/write access to the project's tasks. The owner
// is never stored in the members association.
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"not null"`
	Key         string    `json:"key" gorm:"uniqueIndex;not null;size:10"`
	Description *string   `json:"description" gorm:"default:null"`
	OwnerID     string    `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Owner   User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members []User `json:"members,omitempty" gorm:"many2many:project_members"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasMember reports whether userID is in the loaded members association.
// The Members relation must be preloaded before calling.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// ProjectRole is the derived role of a user within a single project.
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "owner"
	ProjectRoleMember ProjectRole = "member"
)

// ProjectWithRole annotates a project with the requesting user's role.
type ProjectWithRole struct {
	Project
	UserRole ProjectRole `json:"userRole"`
}

// WithRoleFor derives the role annotation for the given user.
func (p Project) WithRoleFor(userID string) ProjectWithRole {
	role := ProjectRoleMember
	if p.OwnerID == userID {
		role = ProjectRoleOwner
	}
	return ProjectWithRole{Project: p, UserRole: role}
}
