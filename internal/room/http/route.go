package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	group := g.Group("/rooms")
	group.Use(middleware...)
	{
		group.GET("", h.List)
		group.GET("/types", h.Types)
		group.GET("/status/counts", h.StatusCounts)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/mark-cleaning", h.MarkCleaning)
		group.POST("/:id/mark-available", h.MarkAvailable)
	}
}
