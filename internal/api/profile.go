package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/middleware"
	"github.com/creativehub/backend/internal/models"
	"github.com/creativehub/backend/internal/store"
)

// ProfileHandler serves the caller's profile page, skill edits and the
// public freelancer directory.
type ProfileHandler struct {
	store *store.Store
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{store: s}
}

// RegisterRoutes mounts the profile endpoints.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	profile := router.Group("/profile", authn)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/skills", h.AddSkill)
		profile.DELETE("/skills/:skill", h.RemoveSkill)
	}

	router.GET("/freelancers", h.ListFreelancers)
	router.GET("/freelancers/:id", h.GetFreelancer)
}

// GetProfile returns the caller's profile together with their portfolios.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	profile, err := h.store.ProfileFor(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"portfolios": h.store.Portfolios(userID),
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	current, err := h.store.ProfileFor(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	updated := models.Profile{
		UserID:      userID,
		Name:        req.Name,
		Title:       req.Title,
		Email:       current.Email,
		Phone:       req.Phone,
		Location:    req.Location,
		Bio:         req.Bio,
		Skills:      req.Skills,
		MemberSince: current.MemberSince,
		Avatar:      req.Avatar,
	}
	if updated.Skills == nil {
		updated.Skills = current.Skills
	}
	if updated.Avatar == "" {
		updated.Avatar = current.Avatar
	}

	if err := h.store.UpdateProfile(c.Request.Context(), userID, updated); err != nil {
		respondStoreError(c, err)
		return
	}

	profile, err := h.store.ProfileFor(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) AddSkill(c *gin.Context) {
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	profile, err := h.store.AddSkill(userID, req.Skill)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	profile, err := h.store.RemoveSkill(userID, c.Param("skill"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ListFreelancers returns profiles with at least one public portfolio.
func (h *ProfileHandler) ListFreelancers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"freelancers": h.store.FreelancerProfiles()})
}

// GetFreelancer returns one freelancer's profile and public portfolios.
func (h *ProfileHandler) GetFreelancer(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := h.store.ProfileFor(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	public := make([]models.Portfolio, 0)
	for _, p := range h.store.Portfolios(userID) {
		if p.IsPublic {
			public = append(public, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "portfolios": public})
}
