package expense

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "expense not found")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "unknown expense category")
	ErrInvalidAmount   = apperror.New(http.StatusBadRequest, "amount must be greater than zero")
	ErrNoData          = apperror.New(http.StatusBadRequest, "no data to update")
)

// Categories is the closed set of expense categories.
var Categories = []string{
	"salaries",
	"utilities",
	"supplies",
	"maintenance",
	"food",
	"marketing",
	"other",
}

func IsValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Expense is one operating cost entry.
type Expense struct {
	ID          string
	Title       string
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// Filter defines filter options for listing expenses.
type Filter struct {
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Summary aggregates spending for the stats endpoint. ByCategory covers the
// current month.
type Summary struct {
	Today      decimal.Decimal
	ThisMonth  decimal.Decimal
	ThisYear   decimal.Decimal
	ByCategory map[string]decimal.Decimal
}

// MonthTotal is one point of the monthly chart.
type MonthTotal struct {
	Month int
	Total decimal.Decimal
}
