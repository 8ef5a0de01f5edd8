package dto

import "time"

// SetDateRangeRequest creates or replaces a task's scheduling overlay.
type SetDateRangeRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// UpdateDateRangeRequest patches the overlay; at least one field must be
// present.
type UpdateDateRangeRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}
