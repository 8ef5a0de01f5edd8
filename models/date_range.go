package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateRange is a scheduling overlay for a task, one-to-one by TaskID.
// Any project participant may create, update or delete it.
type DateRange struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID    string    `json:"taskId" gorm:"type:uuid;uniqueIndex;not null"`
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *DateRange) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
