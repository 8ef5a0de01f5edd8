package services

import (
	"testing"

	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/models"
)

func TestCommentLifecycle(t *testing.T) {
	f := newTaskFixture(t)
	comments := NewCommentService()

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Discuss"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	created, err := comments.CreateComment(task.ID, f.member.ID, dto.CreateCommentRequest{Content: "Looks good"})
	if err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	if created.Author.ID != f.member.ID {
		t.Errorf("author = %q, want %q", created.Author.ID, f.member.ID)
	}

	// A stranger cannot comment or read comments.
	if _, err := comments.CreateComment(task.ID, f.stranger.ID, dto.CreateCommentRequest{Content: "Hi"}); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Errorf("expected a forbidden error for a stranger's comment, got %v", err)
	}
	if _, err := comments.ListCommentsForTask(task.ID, f.stranger.ID); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Errorf("expected a forbidden error for a stranger's listing, got %v", err)
	}

	listed, err := comments.ListCommentsForTask(task.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to list comments: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("comment count = %d, want 1", len(listed))
	}
	if listed[0].Author.Username != f.member.Username {
		t.Errorf("listed author = %q, want %q", listed[0].Author.Username, f.member.Username)
	}
}

func TestCommentAuthorOnlyMutation(t *testing.T) {
	f := newTaskFixture(t)
	comments := NewCommentService()

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Discuss"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	comment, err := comments.CreateComment(task.ID, f.member.ID, dto.CreateCommentRequest{Content: "First draft"})
	if err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	// Even the project owner cannot edit someone else's comment.
	if _, err := comments.UpdateComment(comment.ID, f.owner.ID, dto.UpdateCommentRequest{Content: "Edited"}); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Errorf("expected a forbidden error for a non-author edit, got %v", err)
	}
	if err := comments.DeleteComment(comment.ID, f.owner.ID); !models.IsCode(err, models.ErrCodeForbidden) {
		t.Errorf("expected a forbidden error for a non-author delete, got %v", err)
	}

	updated, err := comments.UpdateComment(comment.ID, f.member.ID, dto.UpdateCommentRequest{Content: "Second draft"})
	if err != nil {
		t.Fatalf("author could not edit the comment: %v", err)
	}
	if updated.Content != "Second draft" {
		t.Errorf("content = %q, want %q", updated.Content, "Second draft")
	}

	if err := comments.DeleteComment(comment.ID, f.member.ID); err != nil {
		t.Fatalf("author could not delete the comment: %v", err)
	}
	if _, err := comments.UpdateComment(comment.ID, f.member.ID, dto.UpdateCommentRequest{Content: "Gone"}); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("expected a not found error after deletion, got %v", err)
	}
}

// Comment activity never reaches the realtime feed; only task changes do.
func TestCommentsDoNotBroadcast(t *testing.T) {
	f := newTaskFixture(t)
	comments := NewCommentService()

	task, err := f.tasks.CreateTask(dto.CreateTaskRequest{Title: "Quiet"}, f.project.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	events, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	if _, err := comments.CreateComment(task.ID, f.owner.ID, dto.CreateCommentRequest{Content: "Shh"}); err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	select {
	case payload := <-events:
		t.Errorf("unexpected event broadcast for a comment: %s", payload)
	default:
	}
}
