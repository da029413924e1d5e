package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/expense"
)

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date.Format(booking.DateLayout),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

type CreateExpenseBody struct {
	Title       string          `json:"title" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description string          `json:"description"`
}

type UpdateExpenseBody struct {
	Title       *string          `json:"title"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description"`
}

type ListExpensesRequest struct {
	Category string `form:"category"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

type SummaryResponse struct {
	Today      decimal.Decimal            `json:"today"`
	ThisMonth  decimal.Decimal            `json:"this_month"`
	ThisYear   decimal.Decimal            `json:"this_year"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}

type MonthTotalResponse struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}
