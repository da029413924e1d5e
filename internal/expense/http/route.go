package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	group := g.Group("/expenses")
	group.Use(middleware...)
	{
		group.GET("", h.List)
		group.GET("/categories", h.Categories)
		group.GET("/summary/stats", h.Summary)
		group.GET("/monthly/chart", h.MonthlyChart)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
