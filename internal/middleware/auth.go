// Package middleware holds the gin middleware shared by the API routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenContextKey is the gin context key the extracted token is stored
// under.
const TokenContextKey = "github_token"

// BearerToken extracts the caller's token from the Authorization header
// and stores it in the request context. The token is read exclusively
// from the header: a token passed via the query string is never consulted,
// so it cannot leak through access logs into an authenticated call.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" {
				c.Set(TokenContextKey, token)
			}
		}
		c.Next()
	}
}

// RequireToken aborts the request when no bearer token was extracted.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(TokenContextKey); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "token required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Token returns the bearer token extracted for this request, or an empty
// string when the request is unauthenticated.
func Token(c *gin.Context) string {
	if value, exists := c.Get(TokenContextKey); exists {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}
