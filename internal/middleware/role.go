package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role.
// It must run after JWTAuth.
func RequireRole(requiredRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != string(requiredRole) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// StaffOnly gates approval, category mutation and equipment mutation
// endpoints.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleStaff)
}
