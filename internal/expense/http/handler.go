package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/expense"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/response"
)

type Handler struct {
	service expense.Service
}

func NewHandler(service expense.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := expense.Filter{Category: req.Category}
	if req.DateFrom != "" {
		d, err := booking.ParseDate(req.DateFrom)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := booking.ParseDate(req.DateTo)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateTo = &d
	}

	expenses, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = NewExpenseResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewExpenseResponse(e))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateExpenseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := expense.CreateRequest{
		Title:       body.Title,
		Category:    body.Category,
		Amount:      body.Amount,
		Description: body.Description,
	}
	if body.Date != "" {
		d, err := booking.ParseDate(body.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Date = d
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewExpenseResponse(e))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateExpenseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := expense.UpdateRequest{
		Title:       body.Title,
		Category:    body.Category,
		Amount:      body.Amount,
		Description: body.Description,
	}
	if body.Date != nil && *body.Date != "" {
		d, err := booking.ParseDate(*body.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Date = &d
	}

	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewExpenseResponse(e))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Summary(c *gin.Context) {
	s, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{
		Today:      s.Today,
		ThisMonth:  s.ThisMonth,
		ThisYear:   s.ThisYear,
		ByCategory: s.ByCategory,
	})
}

func (h *Handler) MonthlyChart(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	totals, err := h.service.MonthlyTotals(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MonthTotalResponse, len(totals))
	for i, t := range totals {
		items[i] = MonthTotalResponse{Month: t.Month, Total: t.Total}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": expense.Categories})
}
