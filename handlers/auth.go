package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/editfolio/editfolio-backend/internal/auth"
	"github.com/editfolio/editfolio-backend/internal/users"
)

// AuthHandler exposes the three sign-in modes plus logout and identity
// introspection.
type AuthHandler struct {
	authn    *auth.Authenticator
	usersSvc *users.Service
	gate     *auth.Gate
}

func NewAuthHandler(a *auth.Authenticator, u *users.Service, g *auth.Gate) *AuthHandler {
	return &AuthHandler{authn: a, usersSvc: u, gate: g}
}

// Register routes under /auth
func (h *AuthHandler) Register(r *gin.Engine) {
	a := r.Group("/auth")
	a.POST("/anonymous", h.Anonymous)
	a.POST("/register", h.RegisterAccount)
	a.POST("/login", h.Login)
	a.POST("/token", h.TokenSignIn)
	a.POST("/logout", h.Logout)
	a.GET("/me", h.Me)
}

// Anonymous issues a fresh visitor session.
func (h *AuthHandler) Anonymous(c *gin.Context) {
	creds, err := h.authn.SignInAnonymously(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusOK, creds)
}

// RegisterAccount creates a credentialed account and signs it in.
func (h *AuthHandler) RegisterAccount(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.usersSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	creds, err := h.authn.SignInWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusCreated, creds)
}

// Login authenticates with email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	creds, err := h.authn.SignInWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}
	c.JSON(http.StatusOK, creds)
}

// TokenSignIn exchanges a pre-provisioned or previously issued token for a
// fresh session.
func (h *AuthHandler) TokenSignIn(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	creds, err := h.authn.SignInWithToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, creds)
}

// Logout revokes the presented session and hands back a fresh anonymous
// one, so callers never end up without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBindJSON(&req)
	creds, err := h.authn.SignOut(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusOK, creds)
}

// Me reports the caller's resolved identity and admin standing.
func (h *AuthHandler) Me(c *gin.Context) {
	id := auth.IdentityFromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"identity": id,
		"state":    h.gate.StateFor(id),
		"isAdmin":  h.gate.IsAdmin(id),
	})
}
