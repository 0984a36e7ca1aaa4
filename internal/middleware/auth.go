// Package middleware provides gin middleware for the supportdesk API.
package middleware

import (
	"net/http"
	"strings"

	"supportdesk/internal/model"
	"supportdesk/internal/security"

	"github.com/gin-gonic/gin"
)

// claimsKey is the gin context key for the authenticated claims.
const claimsKey = "authClaims"

// GetClaims retrieves the authenticated claims from the gin context.
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok
}

// RequireAuth authenticates requests with a bearer token. Missing,
// malformed, or expired tokens abort with 401; valid claims are
// attached to the context for downstream handlers.
func RequireAuth(tokens *security.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided", ""))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided", ""))
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid or expired token", ""))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AllowRoles gates a route to the given role set. Requests whose
// decoded role is not in the set abort with 403. Must run after
// RequireAuth.
func AllowRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided", ""))
			return
		}
		if !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Access denied for role", ""))
			return
		}
		c.Next()
	}
}
