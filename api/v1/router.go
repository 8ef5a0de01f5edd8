package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/lib/storage"
	"github.com/taskboard/backend/middleware"
	"github.com/taskboard/backend/realtime"
	"github.com/taskboard/backend/services"
	"go.uber.org/zap"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, hub *realtime.Hub, store storage.BlobStore, logger *zap.Logger) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Realtime task change feed
	realtimeController := NewRealtimeController(hub, logger)
	router.GET("/ws", realtimeController.Serve)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
	}

	// Everything below requires a valid bearer token
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware())

	authRouter.GET("/me", GetCurrentUser)
	authRouter.PUT("/me", UpdateCurrentUser)

	projectGroup := authRouter.Group("/projects")
	{
		projectGroup.POST("", CreateProject)
		projectGroup.GET("", ListProjects)
		projectGroup.GET("/:id", GetProject)
		projectGroup.PUT("/:id", UpdateProject)
		projectGroup.DELETE("/:id", DeleteProject)
		projectGroup.POST("/:id/members", AddProjectMember)
		projectGroup.GET("/:id/members", ListProjectMembers)
		projectGroup.DELETE("/:id/members/:userId", RemoveProjectMember)
		projectGroup.GET("/:id/date-ranges", ListProjectDateRanges)
	}

	taskController := NewTaskController(services.NewTaskService(hub, logger))
	taskController.RegisterRoutes(authRouter)

	authRouter.POST("/tasks/:id/comments", CreateComment)
	authRouter.GET("/tasks/:id/comments", ListComments)
	authRouter.PUT("/comments/:id", UpdateComment)
	authRouter.DELETE("/comments/:id", DeleteComment)

	authRouter.POST("/tasks/:id/date-range", SetDateRange)
	authRouter.GET("/tasks/:id/date-range", GetDateRange)
	authRouter.PUT("/tasks/:id/date-range", UpdateDateRange)
	authRouter.DELETE("/tasks/:id/date-range", DeleteDateRange)

	imageController := NewImageController(services.NewImageService(store, logger))
	imageController.RegisterRoutes(authRouter)
}
