// Package api contains the Gin handlers for the marketplace HTTP surface.
// Handlers translate requests into domain-store operations and store errors
// into HTTP statuses; all domain invariants live in the store.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/store"
)

// respondStoreError maps a domain-store error onto the HTTP status and body
// the frontend expects.
func respondStoreError(c *gin.Context, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, store.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to do that"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session resolution in progress"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
