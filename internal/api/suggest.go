package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/service"
)

// SuggestHandler proxies cover-image suggestion requests to the generative
// service. Upstream failures never touch domain state; the message is passed
// through so the form can show it.
type SuggestHandler struct {
	suggester service.ISuggestionService
}

// NewSuggestHandler creates a SuggestHandler.
func NewSuggestHandler(suggester service.ISuggestionService) *SuggestHandler {
	return &SuggestHandler{suggester: suggester}
}

// RegisterRoutes mounts the suggestion endpoint.
func (h *SuggestHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	router.POST("/suggestions/cover-images", authn, h.SuggestCoverImages)
}

func (h *SuggestHandler) SuggestCoverImages(c *gin.Context) {
	var req SuggestCoverImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a longer description (at least 20 characters)"})
		return
	}

	if h.suggester == nil {
		c.JSON(http.StatusOK, gin.H{"image_urls": []string{}})
		return
	}

	urls, err := h.suggester.SuggestCoverImages(c.Request.Context(), req.Description)
	if err != nil {
		log.Printf("[SuggestHandler] suggestion request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if urls == nil {
		urls = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"image_urls": urls})
}
