package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image represents uploaded image metadata. The binary payload lives in
// the blob store under StorageKey; only the uploader may modify or delete
// the image.
type Image struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	Filename         string    `json:"filename" gorm:"not null"`
	OriginalFilename string    `json:"originalFilename" gorm:"not null"`
	ContentType      string    `json:"contentType" gorm:"not null"`
	Size             int64     `json:"size" gorm:"not null"`
	StorageKey       string    `json:"-" gorm:"uniqueIndex;not null"`
	URL              string    `json:"url" gorm:"not null"`
	UploadedBy       string    `json:"uploadedBy" gorm:"type:uuid;not null;index"`
	ProjectID        *string   `json:"projectId" gorm:"type:uuid;default:null;index"`
	TaskID           *string   `json:"taskId" gorm:"type:uuid;default:null;index"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
