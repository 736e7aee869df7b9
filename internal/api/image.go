package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/service"
)

// maxImageBytes caps a single upload at 10 MiB.
const maxImageBytes = 10 << 20

// ImageHandler accepts image uploads and returns the stored reference.
type ImageHandler struct {
	images service.IImageService
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(images service.IImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// RegisterRoutes mounts the upload endpoint.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	router.POST("/images", authn, h.UploadImage)
}

// UploadImage reads the "image" multipart field and stores it.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the 10MB limit"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.images.UploadImage(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("[ImageHandler] upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
