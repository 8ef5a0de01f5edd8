package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/models"
)

// statusForCode maps domain error codes to HTTP status codes.
func statusForCode(code models.ErrorCode) int {
	switch code {
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	case models.ErrCodeInvalid:
		return http.StatusBadRequest
	case models.ErrCodeConflict:
		return http.StatusConflict
	case models.ErrCodeForbidden:
		return http.StatusForbidden
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a service error as a JSON response. Internal
// errors are masked so storage details never leak to clients.
func respondError(c *gin.Context, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
		return
	}

	message := appErr.Message
	if appErr.Code == models.ErrCodeInternal {
		message = "Internal server error"
	}
	c.JSON(statusForCode(appErr.Code), gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondBindError writes a request parsing failure.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// currentUserID reads the authenticated user's ID set by the auth
// middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("userId")
}
