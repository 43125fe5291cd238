package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSessionID is the key used to store the token's session ID in the Gin context.
	ContextSessionID = "sessionID"

	sessionParam = "id"
)

// Authorize admits requests carrying a valid session token.
// On routes with an :id parameter the token must have been issued for that session.
func Authorize(ts i.SessionTokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		sessionID, err := ts.SessionID(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if raw := c.Param(sessionParam); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
				return
			}
			if id != sessionID {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}
