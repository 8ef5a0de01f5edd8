package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/lib/storage"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxImageSize is the largest upload accepted, in bytes.
const maxImageSize = 10 << 20

// ImageService handles image uploads and their blob storage backing.
type ImageService struct {
	imageRepo *repositories.ImageRepository
	store     storage.BlobStore
	logger    *zap.Logger
}

// NewImageService creates a new image service instance
func NewImageService(store storage.BlobStore, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		imageRepo: repositories.NewImageRepository(),
		store:     store,
		logger:    logger,
	}
}

// UploadImage validates and stores an image, then records its metadata.
func (s *ImageService) UploadImage(ctx context.Context, data []byte, originalFilename, contentType string, query dto.UploadImageQuery, uploaderID string) (models.Image, error) {
	if len(data) == 0 {
		return models.Image{}, models.ValidationError("the uploaded file is empty")
	}
	if len(data) > maxImageSize {
		return models.Image{}, models.ValidationError("the image exceeds the 10MB size limit")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return models.Image{}, models.ValidationError("only image files can be uploaded")
	}

	folder := "avatar"
	if query.Folder != nil && *query.Folder != "" {
		folder = *query.Folder
	}

	filename := uuid.NewString() + filepath.Ext(originalFilename)
	if query.Name != nil && *query.Name != "" {
		filename = *query.Name
	}
	storageKey := fmt.Sprintf("%s/%s", folder, filename)

	url, err := s.store.Put(ctx, storageKey, data, contentType)
	if err != nil {
		return models.Image{}, models.InternalError(err)
	}

	image := models.Image{
		Filename:         filename,
		OriginalFilename: originalFilename,
		ContentType:      contentType,
		Size:             int64(len(data)),
		StorageKey:       storageKey,
		URL:              url,
		UploadedBy:       uploaderID,
		ProjectID:        query.ProjectID,
		TaskID:           query.TaskID,
	}
	image, err = s.imageRepo.Create(image)
	if err != nil {
		// The blob is already written; try to clean it up so storage
		// does not accumulate orphans.
		if cleanupErr := s.store.Delete(ctx, storageKey); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned blob",
				zap.String("storage_key", storageKey),
				zap.Error(cleanupErr))
		}
		return models.Image{}, models.InternalError(err)
	}

	s.logger.Info("image uploaded",
		zap.String("image_id", image.ID),
		zap.String("storage_key", storageKey),
		zap.Int64("size", image.Size))

	return image, nil
}

// GetImage returns an image's metadata.
func (s *ImageService) GetImage(imageID string) (models.Image, error) {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Image{}, models.NotFoundError("image not found")
		}
		return models.Image{}, models.InternalError(err)
	}
	return image, nil
}

// DownloadImage returns an image's metadata together with its bytes.
func (s *ImageService) DownloadImage(ctx context.Context, imageID string) (models.Image, []byte, error) {
	image, err := s.GetImage(imageID)
	if err != nil {
		return models.Image{}, nil, err
	}

	data, err := s.store.Get(ctx, image.StorageKey)
	if err != nil {
		return models.Image{}, nil, models.InternalError(err)
	}
	return image, data, nil
}

// ListImagesForProject returns a project's images, newest first.
func (s *ImageService) ListImagesForProject(projectID string) ([]models.Image, error) {
	images, err := s.imageRepo.FindByProjectID(projectID)
	if err != nil {
		return nil, models.InternalError(err)
	}
	return images, nil
}

// ListImagesForTask returns a task's images, newest first.
func (s *ImageService) ListImagesForTask(taskID string) ([]models.Image, error) {
	images, err := s.imageRepo.FindByTaskID(taskID)
	if err != nil {
		return nil, models.InternalError(err)
	}
	return images, nil
}

// ListImagesForUser returns the images a user has uploaded, newest
// first.
func (s *ImageService) ListImagesForUser(userID string) ([]models.Image, error) {
	images, err := s.imageRepo.FindByUploader(userID)
	if err != nil {
		return nil, models.InternalError(err)
	}
	return images, nil
}

// UpdateImage reassociates an image with a project or task. Only the
// uploader may change it.
func (s *ImageService) UpdateImage(imageID, userID string, req dto.UpdateImageRequest) (models.Image, error) {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Image{}, models.NotFoundError("image not found")
		}
		return models.Image{}, models.InternalError(err)
	}

	if image.UploadedBy != userID {
		return models.Image{}, models.ForbiddenError("you can only modify images you uploaded")
	}

	fields := map[string]interface{}{}
	if req.Filename != nil && *req.Filename != "" {
		fields["filename"] = *req.Filename
	}
	// Null or an empty string clears an association.
	if req.ProjectID.Set {
		if req.ProjectID.Valid && req.ProjectID.Value != "" {
			fields["project_id"] = req.ProjectID.Value
		} else {
			fields["project_id"] = nil
		}
	}
	if req.TaskID.Set {
		if req.TaskID.Valid && req.TaskID.Value != "" {
			fields["task_id"] = req.TaskID.Value
		} else {
			fields["task_id"] = nil
		}
	}
	if len(fields) == 0 {
		return image, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.imageRepo.Updates(imageID, fields); err != nil {
		return models.Image{}, models.InternalError(err)
	}

	updated, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		return models.Image{}, models.InternalError(err)
	}
	return updated, nil
}

// DeleteImage removes an image record and its stored blob. Only the
// uploader may delete it.
func (s *ImageService) DeleteImage(ctx context.Context, imageID, userID string) error {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFoundError("image not found")
		}
		return models.InternalError(err)
	}

	if image.UploadedBy != userID {
		return models.ForbiddenError("you can only delete images you uploaded")
	}

	if err := s.store.Delete(ctx, image.StorageKey); err != nil {
		return models.InternalError(err)
	}
	if err := s.imageRepo.Delete(imageID); err != nil {
		return models.InternalError(err)
	}

	s.logger.Info("image deleted",
		zap.String("image_id", imageID),
		zap.String("storage_key", image.StorageKey))

	return nil
}
