package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/services"
)

var commentService = services.NewCommentService()

// CreateComment adds a comment to a task
func CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := commentService.CreateComment(c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// ListComments returns a task's comments with their authors
func ListComments(c *gin.Context) {
	comments, err := commentService.ListCommentsForTask(c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"comments": comments,
	})
}

// UpdateComment edits a comment
func UpdateComment(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := commentService.UpdateComment(c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

// DeleteComment removes a comment
func DeleteComment(c *gin.Context) {
	if err := commentService.DeleteComment(c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Comment deleted successfully",
	})
}
