package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/middleware"
	"github.com/creativehub/backend/internal/store"
)

// PortfolioHandler serves the portfolio showcase and the owner's CRUD surface.
type PortfolioHandler struct {
	store *store.Store
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(s *store.Store) *PortfolioHandler {
	return &PortfolioHandler{store: s}
}

// RegisterRoutes mounts the portfolio endpoints. authn guards the mutating
// routes; limiter throttles uploads.
func (h *PortfolioHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc, limiter gin.HandlerFunc) {
	portfolios := router.Group("/portfolios")
	{
		portfolios.GET("", h.ListShowcase)
		portfolios.GET("/mine", authn, h.ListMine)
		portfolios.GET("/:id", h.GetPortfolio)
		if limiter != nil {
			portfolios.POST("", authn, limiter, h.CreatePortfolio)
		} else {
			portfolios.POST("", authn, h.CreatePortfolio)
		}
		portfolios.PUT("/:id", authn, h.UpdatePortfolio)
		portfolios.DELETE("/:id", authn, h.DeletePortfolio)
		portfolios.POST("/:id/like", authn, h.Like)
		portfolios.DELETE("/:id/like", authn, h.Unlike)
	}
}

// ListShowcase returns public portfolios, optionally filtered by ?q= and
// ?category=.
func (h *PortfolioHandler) ListShowcase(c *gin.Context) {
	portfolios := h.store.Showcase(c.Query("q"), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

// ListMine returns every portfolio the caller owns, public or not.
func (h *PortfolioHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	c.JSON(http.StatusOK, gin.H{"portfolios": h.store.Portfolios(userID)})
}

// GetPortfolio returns one portfolio and records the view.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portfolio id"})
		return
	}

	h.store.RecordView(id)
	portfolio, err := h.store.PortfolioByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	liked := false
	if userID, ok := middleware.UserID(c); ok {
		liked = h.store.Liked(userID, id)
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio, "liked": liked})
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	created, err := h.store.CreatePortfolio(userID, store.PortfolioDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverImage:  req.CoverImage,
		Images:      req.Images,
		IsPublic:    req.IsPublic,
		Featured:    req.Featured,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"portfolio": created})
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portfolio id"})
		return
	}

	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	updated, err := h.store.UpdatePortfolio(id, userID, store.PortfolioPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverImage:  req.CoverImage,
		Images:      req.Images,
		IsPublic:    req.IsPublic,
		Featured:    req.Featured,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": updated})
}

func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portfolio id"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.store.DeletePortfolio(id, userID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "portfolio deleted", "id": id})
}

func (h *PortfolioHandler) Like(c *gin.Context) {
	h.setLike(c, true)
}

func (h *PortfolioHandler) Unlike(c *gin.Context) {
	h.setLike(c, false)
}

func (h *PortfolioHandler) setLike(c *gin.Context, liked bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portfolio id"})
		return
	}

	userID, _ := middleware.UserID(c)
	portfolio, err := h.store.SetLike(userID, id, liked)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio, "liked": liked})
}
