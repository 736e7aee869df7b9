package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/identity"
	"github.com/creativehub/backend/internal/models"
)

// TokenValidator turns a bearer token back into its principal.
type TokenValidator interface {
	ValidateToken(token string) (*identity.Principal, error)
}

// SessionResolver maps a principal onto the local user and profile records.
// The domain store implements it; resolving an already-known principal is
// idempotent, so running it per request is safe.
type SessionResolver interface {
	ResolveSession(p *identity.Principal) (*models.User, *models.Profile)
}

// UserIDKey is the gin context key holding the numeric user id.
const UserIDKey = "user_id"

// Auth validates the Authorization header and injects the resolved numeric
// user id into the request context.
func Auth(validator TokenValidator, resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		principal, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		user, _ := resolver.ResolveSession(principal)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session could not be resolved"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// UserID extracts the authenticated numeric user id from the context.
func UserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
