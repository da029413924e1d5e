package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the dashboard and reports endpoints. The dashboard gets
// its own middleware chain because it is gated by a different page permission.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, dashboardMiddleware, reportsMiddleware []gin.HandlerFunc) {
	dashboard := g.Group("/dashboard")
	dashboard.Use(dashboardMiddleware...)
	{
		dashboard.GET("/stats", h.Dashboard)
	}

	reports := g.Group("/reports")
	reports.Use(reportsMiddleware...)
	{
		reports.GET("/daily", h.Daily)
		reports.GET("/monthly", h.Monthly)
		reports.GET("/revenue", h.Revenue)
		reports.GET("/export", h.Export)
	}
}
