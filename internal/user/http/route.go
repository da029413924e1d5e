package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires authentication and user management. Login is public,
// /auth/me needs only a valid token, and /users is admin-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
	}

	users := g.Group("/users")
	users.Use(authMiddleware, adminMiddleware)
	{
		users.GET("", h.List)
		users.GET("/pages", h.PageOptions)
		users.POST("", h.Create)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}
