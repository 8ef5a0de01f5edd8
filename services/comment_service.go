package services

import (
	"errors"
	"strings"
	"time"

	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
	"github.com/taskboard/backend/repositories"
	"gorm.io/gorm"
)

// CommentService handles business logic for task comments
type CommentService struct {
	commentRepo *repositories.CommentRepository
	taskRepo    *repositories.TaskRepository
	userRepo    *repositories.UserRepository
	permissions *PermissionService
}

// NewCommentService creates a new comment service instance
func NewCommentService() *CommentService {
	return &CommentService{
		commentRepo: repositories.NewCommentRepository(),
		taskRepo:    repositories.NewTaskRepository(),
		userRepo:    repositories.NewUserRepository(),
		permissions: NewPermissionService(),
	}
}

// taskProjectAccess resolves a task and checks the user can access its
// project.
func (s *CommentService) taskProjectAccess(taskID, userID string) (models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.NotFoundError("task not found")
		}
		return models.Task{}, models.InternalError(err)
	}
	if _, err := s.permissions.CanAccessProject(task.ProjectID, userID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CreateComment adds a comment to a task the user can access.
func (s *CommentService) CreateComment(taskID, userID string, req dto.CreateCommentRequest) (models.CommentData, error) {
	if strings.TrimSpace(req.Content) == "" {
		return models.CommentData{}, models.ValidationError("the comment content cannot be empty")
	}

	if _, err := s.taskProjectAccess(taskID, userID); err != nil {
		return models.CommentData{}, err
	}

	comment := models.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Content: req.Content,
	}
	comment, err := s.commentRepo.Create(comment)
	if err != nil {
		return models.CommentData{}, models.InternalError(err)
	}

	author, err := s.userRepo.FindByID(userID)
	if err != nil {
		return models.CommentData{}, models.InternalError(err)
	}

	return comment.WithAuthor(author), nil
}

// ListCommentsForTask returns a task's comments in creation order, each
// with its author's public data.
func (s *CommentService) ListCommentsForTask(taskID, userID string) ([]models.CommentData, error) {
	if _, err := s.taskProjectAccess(taskID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByTaskID(taskID)
	if err != nil {
		return nil, models.InternalError(err)
	}

	result := make([]models.CommentData, 0, len(comments))
	for _, comment := range comments {
		result = append(result, comment.WithAuthor(comment.User))
	}
	return result, nil
}

// UpdateComment edits a comment's content. Only its author may edit it.
func (s *CommentService) UpdateComment(commentID, userID string, req dto.UpdateCommentRequest) (models.CommentData, error) {
	if strings.TrimSpace(req.Content) == "" {
		return models.CommentData{}, models.ValidationError("the comment content cannot be empty")
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CommentData{}, models.NotFoundError("comment not found")
		}
		return models.CommentData{}, models.InternalError(err)
	}

	if comment.UserID != userID {
		return models.CommentData{}, models.ForbiddenError("you can only edit your own comments")
	}

	fields := map[string]interface{}{
		"content":    req.Content,
		"updated_at": time.Now(),
	}
	if err := s.commentRepo.Updates(commentID, fields); err != nil {
		return models.CommentData{}, models.InternalError(err)
	}

	updated, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return models.CommentData{}, models.InternalError(err)
	}
	return updated.WithAuthor(updated.User), nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(commentID, userID string) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFoundError("comment not found")
		}
		return models.InternalError(err)
	}

	if comment.UserID != userID {
		return models.ForbiddenError("you can only delete your own comments")
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return models.InternalError(err)
	}
	return nil
}
