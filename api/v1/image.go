package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/dto"
	"github.com/taskboard/backend/services"
)

// ImageController handles image upload and retrieval endpoints
type ImageController struct {
	imageService *services.ImageService
}

// NewImageController creates a new image controller
func NewImageController(imageService *services.ImageService) *ImageController {
	return &ImageController{imageService: imageService}
}

// RegisterRoutes registers image endpoints on an authenticated router group
func (ic *ImageController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/images/upload", ic.UploadImage)
	router.GET("/images/:id", ic.GetImage)
	router.GET("/images/:id/download", ic.DownloadImage)
	router.PUT("/images/:id", ic.UpdateImage)
	router.DELETE("/images/:id", ic.DeleteImage)
	router.GET("/projects/:id/images", ic.ListProjectImages)
	router.GET("/tasks/:id/images", ic.ListTaskImages)
	router.GET("/me/images", ic.ListMyImages)
}

// UploadImage accepts a multipart file upload
func (ic *ImageController) UploadImage(ctx *gin.Context) {
	var query dto.UploadImageQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "A file field is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "The uploaded file could not be read",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "The uploaded file could not be read",
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	image, err := ic.imageService.UploadImage(ctx.Request.Context(), data, fileHeader.Filename, contentType, query, currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Image uploaded successfully",
		"image":   image,
	})
}

// GetImage returns an image's metadata
func (ic *ImageController) GetImage(ctx *gin.Context) {
	image, err := ic.imageService.GetImage(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"image":  image,
	})
}

// DownloadImage streams an image's bytes with its stored content type
func (ic *ImageController) DownloadImage(ctx *gin.Context) {
	image, data, err := ic.imageService.DownloadImage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", image.OriginalFilename))
	ctx.Data(http.StatusOK, image.ContentType, data)
}

// UpdateImage reassociates an image with a project or task
func (ic *ImageController) UpdateImage(ctx *gin.Context) {
	var req dto.UpdateImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	image, err := ic.imageService.UpdateImage(ctx.Param("id"), currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Image updated successfully",
		"image":   image,
	})
}

// DeleteImage removes an image and its stored blob
func (ic *ImageController) DeleteImage(ctx *gin.Context) {
	if err := ic.imageService.DeleteImage(ctx.Request.Context(), ctx.Param("id"), currentUserID(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Image deleted successfully",
	})
}

// ListProjectImages returns the images attached to a project
func (ic *ImageController) ListProjectImages(ctx *gin.Context) {
	images, err := ic.imageService.ListImagesForProject(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"images": images,
	})
}

// ListTaskImages returns the images attached to a task
func (ic *ImageController) ListTaskImages(ctx *gin.Context) {
	images, err := ic.imageService.ListImagesForTask(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"images": images,
	})
}

// ListMyImages returns the images the caller has uploaded
func (ic *ImageController) ListMyImages(ctx *gin.Context) {
	images, err := ic.imageService.ListImagesForUser(currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"images": images,
	})
}
