// README: JWT auth middleware. Verified claims are stashed on the gin context
// for handlers to read via CallerUID / CallerRole.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"antar/internal/modules/auth"
	"antar/internal/types"
)

const (
	ctxKeyUID  = "caller_uid"
	ctxKeyRole = "caller_role"
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxKeyUID, string(claims.UserID))
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

// CallerUID returns the authenticated user's ID. Empty when unauthenticated.
func CallerUID(c *gin.Context) types.ID {
	return types.ID(c.GetString(ctxKeyUID))
}

// CallerRole returns the authenticated user's role claim.
func CallerRole(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}
