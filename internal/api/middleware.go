package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dangarahotel/frontdesk-backend/internal/auth"
	"github.com/dangarahotel/frontdesk-backend/internal/permission"
	"github.com/dangarahotel/frontdesk-backend/internal/user"
)

// RequireAdmin ensures the authenticated user holds the admin role.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetRole(c) != string(permission.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}
		c.Next()
	}
}

// RequirePage gates a route group behind one admin-panel page permission.
// Admins pass unconditionally. The user's stored permission set is loaded on
// every request so a permission change takes effect without re-login.
// It MUST be used after auth.AuthRequired middleware.
func RequirePage(userService user.Service, page permission.Key) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := permission.Role(auth.GetRole(c))
		if role == permission.RoleAdmin {
			c.Next()
			return
		}

		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !permission.HasPermission(u.Role, u.Permissions, page) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: page access not granted"})
			return
		}
		c.Next()
	}
}
