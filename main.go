package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/taskboard/backend/api/v1"
	"github.com/taskboard/backend/config"
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/lib/logger"
	"github.com/taskboard/backend/lib/storage"
	"github.com/taskboard/backend/realtime"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present
	config.LoadEnv()

	zapLogger, err := logger.New(
		config.GetEnv("LOG_LEVEL", "info"),
		config.GetEnv("LOG_ENCODING", "json"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Connect to the database and run migrations
	database.Initialize()

	store, err := storage.NewLocalStore(
		config.GetEnv("UPLOAD_DIR", "./uploads"),
		config.GetEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	)
	if err != nil {
		zapLogger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}

	hub := realtime.NewHub(zapLogger)

	// Set Gin mode
	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Register API routes
	apiGroup := router.Group("/api")
	v1.RegisterRoutes(apiGroup, hub, store, zapLogger)

	port := config.GetEnv("PORT", "8080")
	zapLogger.Info("Taskboard API starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
