package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/editfolio/editfolio-backend/internal/auth"
)

// Resolver is the minimal interface the middleware depends on.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*auth.Identity, error)
}

// Identity resolves an optional Bearer session token and attaches the
// caller identity to the request context. Requests without a token (or
// with a stale one) pass through unauthenticated; route guards decide
// what that is allowed to do.
func Identity(res Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		var token string
		if n, _ := fmt.Sscanf(header, "Bearer %s", &token); n != 1 {
			c.Next()
			return
		}
		id, err := res.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if id != nil {
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}
}

// RequireAdmin aborts any request whose identity does not pass the gate.
func RequireAdmin(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.IdentityFromContext(c.Request.Context())
		switch gate.StateFor(id) {
		case auth.StateAdmin:
			c.Next()
		case auth.StateUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
		}
	}
}
