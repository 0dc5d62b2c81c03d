package middleware

import (
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// principalKey is the key used to store the resolved authz.Principal for the
// request. The principal is built once by the auth middleware and read by
// every handler; it is never mutated afterwards.
const principalKey = contextKey("principal")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		// This should not happen if the auth middleware sets it correctly
		return "", false
	}

	return userID, true
}

// GetPrincipalFromContext retrieves the request principal from the Gin context.
// Requests that never passed through an auth middleware get the anonymous
// principal, so callers can evaluate permissions unconditionally.
func GetPrincipalFromContext(c *gin.Context) authz.Principal {
	val, exists := c.Get(string(principalKey))
	if !exists {
		if p, ok := c.Request.Context().Value(principalKey).(authz.Principal); ok {
			return p
		}
		return authz.Anonymous
	}

	principal, ok := val.(authz.Principal)
	if !ok {
		return authz.Anonymous
	}
	return principal
}
