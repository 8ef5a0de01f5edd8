package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/services"
)

var projectService = services.NewProjectService()

// CreateProject handles project creation
func CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := projectService.CreateProject(req, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Project created successfully",
		"project": project,
	})
}

// ListProjects returns the projects the user owns or belongs to
func ListProjects(c *gin.Context) {
	projects, err := projectService.ListProjectsForUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"projects": projects,
	})
}

// GetProject returns a single project
func GetProject(c *gin.Context) {
	project, err := projectService.GetProject(c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"project": project,
	})
}

// UpdateProject handles project updates
func UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := projectService.UpdateProject(c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project updated successfully",
		"project": project,
	})
}

// DeleteProject handles project deletion
func DeleteProject(c *gin.Context) {
	if err := projectService.DeleteProject(c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}

// AddProjectMember adds a user to a project by email
func AddProjectMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := projectService.AddMember(c.Param("id"), currentUserID(c), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Member added successfully",
	})
}

// ListProjectMembers returns a project's participants
func ListProjectMembers(c *gin.Context) {
	members, err := projectService.ListMembers(c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"members": members,
	})
}

// RemoveProjectMember removes a user from a project
func RemoveProjectMember(c *gin.Context) {
	if err := projectService.RemoveMember(c.Param("id"), currentUserID(c), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Member removed successfully",
	})
}
