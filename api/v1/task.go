package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/services"
)

// TaskController handles task-related API endpoints
type TaskController struct {
	taskService *services.TaskService
}

// NewTaskController creates a new task controller
func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// RegisterRoutes registers task endpoints on an authenticated router group
func (tc *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:id/tasks", tc.CreateTask)
	router.GET("/projects/:id/tasks", tc.ListTasks)
	router.GET("/tasks/:id", tc.GetTask)
	router.GET("/tasks/:id/full", tc.GetTaskWithDateRange)
	router.PUT("/tasks/:id", tc.UpdateTask)
	router.DELETE("/tasks/:id", tc.DeleteTask)
}

// CreateTask creates a task inside a project
func (tc *TaskController) CreateTask(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	task, err := tc.taskService.CreateTask(req, ctx.Param("id"), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Task created successfully",
		"task":    task,
	})
}

// ListTasks returns every task in a project
func (tc *TaskController) ListTasks(ctx *gin.Context) {
	tasks, err := tc.taskService.ListTasksForProject(ctx.Param("id"), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"tasks":  tasks,
	})
}

// GetTask returns a single task
func (tc *TaskController) GetTask(ctx *gin.Context) {
	task, err := tc.taskService.GetTaskByID(ctx.Param("id"), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"task":   task,
	})
}

// GetTaskWithDateRange returns a task with its scheduling overlay
func (tc *TaskController) GetTaskWithDateRange(ctx *gin.Context) {
	task, err := tc.taskService.GetTaskWithDateRange(ctx.Param("id"), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"task":   task,
	})
}

// UpdateTask patches a task
func (tc *TaskController) UpdateTask(ctx *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	task, err := tc.taskService.UpdateTask(ctx.Param("id"), currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask removes a task
func (tc *TaskController) DeleteTask(ctx *gin.Context) {
	if err := tc.taskService.DeleteTask(ctx.Param("id"), currentUserID(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task deleted successfully",
	})
}
