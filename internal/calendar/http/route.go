package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	group := g.Group("/calendar")
	group.Use(middleware...)
	{
		group.GET("", h.Month)
	}
}
