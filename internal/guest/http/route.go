package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	group := g.Group("/guests")
	group.Use(middleware...)
	{
		group.GET("", h.List)
		group.GET("/archive", h.Archive)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.GET("/:id/history", h.History)
		group.POST("/:id/documents", h.UploadDocument)
		group.GET("/:id/documents", h.ListDocuments)
		group.GET("/documents/:docId", h.ServeDocument)
		group.GET("/documents/:docId/thumb", h.ServeDocumentThumb)
	}
}
