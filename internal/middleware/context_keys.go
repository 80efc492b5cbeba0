package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// rolesKey holds the roles granted by the bearer token.
const rolesKey = contextKey("roles")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetRolesFromContext returns the roles of the authenticated caller.
func GetRolesFromContext(c *gin.Context) []string {
	if roles, ok := c.Request.Context().Value(rolesKey).([]string); ok {
		return roles
	}
	return nil
}

// HasRole reports whether the authenticated caller holds role.
func HasRole(c *gin.Context, role string) bool {
	return slices.Contains(GetRolesFromContext(c), role)
}
