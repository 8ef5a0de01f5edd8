package dto

// CreateCommentRequest adds a comment to a task.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// UpdateCommentRequest replaces a comment's content; author only.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}
