package report

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/apperror"
)

var (
	ErrInvalidDate  = apperror.New(http.StatusBadRequest, "invalid date, use YYYY-MM-DD")
	ErrInvalidMonth = apperror.New(http.StatusBadRequest, "invalid month, use YYYY-MM")
	ErrInvalidYear  = apperror.New(http.StatusBadRequest, "invalid year")
)

// DashboardStats is the front page summary. Room counts are derived from the
// booking ledger at call time, never stored.
type DashboardStats struct {
	TotalRooms     int             `json:"total_rooms"`
	AvailableRooms int             `json:"available_rooms"`
	OccupiedRooms  int             `json:"occupied_rooms"`
	ReservedRooms  int             `json:"reserved_rooms"`
	CleaningRooms  int             `json:"cleaning_rooms"`
	TodayIncome    decimal.Decimal `json:"today_income"`
	UpcomingCount  int             `json:"upcoming_count"`
}

// DailyReport summarizes one calendar day of front desk activity.
type DailyReport struct {
	Date      time.Time       `json:"-"`
	CheckIns  int             `json:"check_ins"`
	CheckOuts int             `json:"check_outs"`
	Revenue   decimal.Decimal `json:"revenue"`
	Guests    int             `json:"guests"`
}

// MonthlyReport summarizes one calendar month.
type MonthlyReport struct {
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	Guests         int             `json:"guests"`
	OccupiedNights int             `json:"occupied_nights"`
	Income         decimal.Decimal `json:"income"`
	TopRoomType    string          `json:"top_room_type"`
}

// RevenuePoint is one month of the yearly revenue series. Net is income minus
// expenses.
type RevenuePoint struct {
	Month    int             `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}
