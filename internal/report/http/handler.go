package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/response"
	"github.com/dangarahotel/frontdesk-backend/internal/report"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Daily(c *gin.Context) {
	rep, err := h.service.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":       rep.Date.Format("2006-01-02"),
		"check_ins":  rep.CheckIns,
		"check_outs": rep.CheckOuts,
		"revenue":    rep.Revenue,
		"guests":     rep.Guests,
	})
}

func (h *Handler) Monthly(c *gin.Context) {
	rep, err := h.service.Monthly(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *Handler) Revenue(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	points, err := h.service.Revenue(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": points})
}

// Export streams the yearly xlsx workbook as a download.
func (h *Handler) Export(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	content, filename, err := h.service.ExportYear(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
