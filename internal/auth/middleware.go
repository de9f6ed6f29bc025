package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airtickets/internal/apperr"
)

const claimsContextKey = "auth.claims"

// Authenticate verifies the Authorization header and stores the claims in
// the request context for downstream handlers.
func Authenticate(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := v.Parse(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperr.Message(err)})
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role does not match.
// A mismatch always produces an explicit 403 response, never a dropped
// request.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credential"})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims attached by Authenticate.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	val, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
