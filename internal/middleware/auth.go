package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/propfix/api/internal/auth"
)

const (
	// UserIDKey is the context key for the authenticated caller's user id
	UserIDKey = "user_id"
	// UserRoleKey is the context key for the authenticated caller's role
	UserRoleKey = "user_role"
)

// Auth creates a middleware that verifies the bearer token on every request
// and stores the caller's identity in the Gin context. Requests without a
// valid token are rejected with 401 before reaching any handler.
func Auth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			unauthenticated(c, requestID, "Authorization header with bearer token required")
			return
		}

		claims, err := authService.VerifyToken(token)
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Warn("Token verification failed", map[string]interface{}{
					"request_id": requestID,
					"path":       c.Request.URL.Path,
					"reason":     err.Error(),
				})
			}
			unauthenticated(c, requestID, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, string(claims.Role))

		c.Next()
	}
}

// unauthenticated writes a 401 error envelope and aborts the request.
// The envelope shape matches the apperrors package, which this package
// cannot import without a cycle.
func unauthenticated(c *gin.Context, requestID, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":       "UNAUTHENTICATED",
			"message":    message,
			"request_id": requestID,
		},
	})
}

// GetUserID retrieves the authenticated caller's user id from the Gin
// context. Returns an empty string if the request was not authenticated.
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(UserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}
