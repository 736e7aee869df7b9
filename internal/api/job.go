package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/middleware"
	"github.com/creativehub/backend/internal/store"
)

// JobHandler serves job listings and the posting form.
type JobHandler struct {
	store *store.Store
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(s *store.Store) *JobHandler {
	return &JobHandler{store: s}
}

// RegisterRoutes mounts the job endpoints.
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	jobs := router.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("", authn, h.CreateJob)
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.store.Jobs()})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.store.JobByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	job, err := h.store.CreateJob(userID, store.JobDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Skills:      req.Skills,
		Budget:      req.Budget,
		Location:    req.Location,
		Notes:       req.Notes,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}
