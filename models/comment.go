package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a user comment attached to a task. Only the author
// may edit or remove it.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID    string    `json:"taskId" gorm:"type:uuid;not null;index"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CommentData is the read projection: comment fields plus the author's
// public profile, as returned by the comments API.
type CommentData struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Author    UserData  `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WithAuthor joins a comment with its author's public projection.
func (c Comment) WithAuthor(author User) CommentData {
	return CommentData{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Author:    author.PublicData(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
