package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// UserIDHeader carries the identity of the caller. Token issuance and
	// session handling live outside this service; we trust the gateway to
	// have resolved the user before forwarding the request.
	UserIDHeader = "X-User-ID"

	userIDKey = "userID"
)

// IdentityMiddleware extracts the caller's user ID from the request header and
// stores it on the gin context. Requests without a valid ID are rejected.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserIDHeader + " header"})
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid " + UserIDHeader + " header"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user's ID from the gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
