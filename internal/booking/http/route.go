package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(middleware...)
	{
		group.GET("", h.List)
		group.GET("/transfers/incomplete", h.IncompleteTransfers)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		// Deleting a booking cancels it; nothing ever leaves the ledger.
		group.DELETE("/:id", h.Cancel)
		group.POST("/:id/checkin", h.CheckIn)
		group.POST("/:id/checkout", h.CheckOut)
		group.POST("/:id/transfer", h.Transfer)
	}
}
