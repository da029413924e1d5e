package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/calendar"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/cache"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/response"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

const cacheTTL = 2 * time.Minute

type Handler struct {
	bookings booking.Service
	rooms    room.Service
	cache    *cache.Cache
	now      func() time.Time
}

func NewHandler(bookings booking.Service, rooms room.Service, c *cache.Cache) *Handler {
	return &Handler{
		bookings: bookings,
		rooms:    rooms,
		cache:    c,
		now:      time.Now,
	}
}

// Month renders the month occupancy grid: one row per room, one cell per day,
// each cell derived from the booking ledger.
func (h *Handler) Month(c *gin.Context) {
	var req ListCalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	ref := h.now().UTC()
	if req.Month != "" {
		parsed, err := time.Parse("2006-01", req.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, use YYYY-MM"})
			return
		}
		ref = parsed
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("calendar:%s:%s", ref.Format("2006-01"), req.RoomID)
	var cached CalendarResponse
	if err := h.cache.GetJSON(ctx, key, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	views, err := h.rooms.List(ctx, "")
	if err != nil {
		response.Error(c, err)
		return
	}

	all, err := h.bookings.List(ctx, booking.Filter{RoomID: req.RoomID})
	if err != nil {
		response.Error(c, err)
		return
	}
	index := calendar.NewIndex(all)

	days := calendar.DaysInMonth(ref)
	rows := make([]RoomRowResponse, 0, len(views))
	for _, v := range views {
		if req.RoomID != "" && v.ID != req.RoomID {
			continue
		}
		row := RoomRowResponse{
			RoomID:     v.ID,
			RoomNumber: v.RoomNumber,
			RoomType:   v.RoomType,
			Days:       make([]DayCellResponse, len(days)),
		}
		for i, day := range days {
			row.Days[i] = NewDayCellResponse(day.Format(booking.DateLayout), index.Status(v.ID, day))
		}
		rows = append(rows, row)
	}

	resp := CalendarResponse{
		Month: ref.Format("2006-01"),
		Rooms: rows,
	}
	if err := h.cache.SetJSON(ctx, key, resp, cacheTTL); err != nil {
		zap.L().Warn("calendar cache write failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, resp)
}
