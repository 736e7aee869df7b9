package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/internal/identity"
	"github.com/creativehub/backend/internal/store"
)

// IdentityService is the slice of the identity provider the auth handler
// needs: the delegate operations plus session-token minting.
type IdentityService interface {
	identity.Delegate
	IssueToken(p *identity.Principal) (string, error)
}

// AuthHandler exposes signup, login, federated login and logout. The domain
// store is subscribed to the delegate's session events, so by the time a
// sign-in call returns the local user and profile already exist.
type AuthHandler struct {
	delegate IdentityService
	store    *store.Store
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(delegate IdentityService, s *store.Store) *AuthHandler {
	return &AuthHandler{delegate: delegate, store: s}
}

// RegisterRoutes mounts the auth endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/federated", h.FederatedLogin)
		auth.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := h.delegate.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, http.StatusBadRequest, err)
		return
	}

	h.respondSession(c, http.StatusCreated, principal)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := h.delegate.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, http.StatusUnauthorized, err)
		return
	}

	h.respondSession(c, http.StatusOK, principal)
}

func (h *AuthHandler) FederatedLogin(c *gin.Context) {
	var req FederatedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := h.delegate.SignInWithProvider(c.Request.Context(), req.Provider, identity.ProviderClaim{
		Email:  req.Email,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		h.respondAuthError(c, http.StatusUnauthorized, err)
		return
	}

	h.respondSession(c, http.StatusOK, principal)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.delegate.SignOut(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// respondAuthError surfaces provider messages verbatim and hides everything
// else behind a generic failure.
func (h *AuthHandler) respondAuthError(c *gin.Context, status int, err error) {
	var authErr *identity.AuthError
	if errors.As(err, &authErr) {
		c.JSON(status, gin.H{"error": authErr.Message, "code": authErr.Code})
		return
	}
	log.Printf("[AuthHandler] identity provider failure: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "authentication service unavailable"})
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, principal *identity.Principal) {
	token, err := h.delegate.IssueToken(principal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session token"})
		return
	}

	// Re-resolving is idempotent and returns THIS principal's records, which
	// a concurrent signup elsewhere cannot swap out from under us.
	user, profile := h.store.ResolveSession(principal)
	c.JSON(status, SessionResponse{
		Token:   token,
		User:    user,
		Profile: profile,
	})
}
