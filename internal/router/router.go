// Package router wires the handler set into a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/api"
	"github.com/creativehub/backend/internal/middleware"
)

// Handlers is the full set mounted under /api/v1.
type Handlers struct {
	Auth      *api.AuthHandler
	Profile   *api.ProfileHandler
	Portfolio *api.PortfolioHandler
	Job       *api.JobHandler
	Suggest   *api.SuggestHandler
	Image     *api.ImageHandler
}

// Setup configures the application routes. authn guards the signed-in
// surface; uploadLimiter may be nil when redis is unavailable.
func Setup(h Handlers, authn gin.HandlerFunc, uploadLimiter gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(v1)
		h.Profile.RegisterRoutes(v1, authn)
		h.Portfolio.RegisterRoutes(v1, authn, uploadLimiter)
		h.Job.RegisterRoutes(v1, authn)
		h.Suggest.RegisterRoutes(v1, authn)
		h.Image.RegisterRoutes(v1, authn)
	}

	return router
}
