package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jaeyeonyy/moacc/internal/token"
)

const (
	ctxUserIDKey   = "userId"
	ctxUsernameKey = "username"
)

// Auth verifies the Bearer access token and stores the caller's identity in
// the request context for handlers to pick up.
func Auth(tokens *token.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := tokens.ParseAccessToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUsernameKey, claims.Subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: message,
	})
}

// GetUserID returns the authenticated caller's numeric id.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetUsername returns the authenticated caller's username.
func GetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUsernameKey)
	if !exists {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
