package auth

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Middleware resolves the Authorization header into a principal and stores
// it on the request context. Missing or invalid tokens end the request
// with 401; the client's job is to re-authenticate and retry.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		principal, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireOperator gates operator-only routes. Runs after Middleware.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsOperator() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operator role required"})
			return
		}
		c.Next()
	}
}

func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}

// SetPrincipal is for handler tests that bypass the middleware.
func SetPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalKey, principal)
}
