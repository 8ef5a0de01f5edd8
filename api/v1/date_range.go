package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/services"
)

var dateRangeService = services.NewDateRangeService()

// SetDateRange creates or replaces a task's date range
func SetDateRange(c *gin.Context) {
	var req dto.SetDateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	dateRange, err := dateRangeService.SetDateRange(c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Date range saved successfully",
		"dateRange": dateRange,
	})
}

// GetDateRange returns a task's date range
func GetDateRange(c *gin.Context) {
	dateRange, err := dateRangeService.GetDateRange(c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"dateRange": dateRange,
	})
}

// UpdateDateRange patches a task's date range
func UpdateDateRange(c *gin.Context) {
	var req dto.UpdateDateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	dateRange, err := dateRangeService.UpdateDateRange(c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Date range updated successfully",
		"dateRange": dateRange,
	})
}

// DeleteDateRange removes a task's date range
func DeleteDateRange(c *gin.Context) {
	if err := dateRangeService.DeleteDateRange(c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Date range deleted successfully",
	})
}

// ListProjectDateRanges returns every date range in a project
func ListProjectDateRanges(c *gin.Context) {
	ranges, err := dateRangeService.ListDateRangesForProject(c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"dateRanges": ranges,
	})
}
