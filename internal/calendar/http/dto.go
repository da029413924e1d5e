package http

import (
	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/calendar"
)

type ListCalendarRequest struct {
	Month  string `form:"month" binding:"omitempty,datetime=2006-01"`
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
}

// DayCellResponse is one cell of the month grid. BookingID and guest names are
// present when the cell is not available, so the grid can open the booking.
type DayCellResponse struct {
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	BookingID    string   `json:"booking_id,omitempty"`
	GuestNames   []string `json:"guest_names,omitempty"`
	CheckOutDate string   `json:"check_out_date,omitempty"`
}

func NewDayCellResponse(date string, ds calendar.DayStatus) DayCellResponse {
	cell := DayCellResponse{
		Date:   date,
		Status: string(ds.Status),
	}
	if ds.Booking != nil {
		cell.BookingID = ds.Booking.ID
		cell.GuestNames = ds.Booking.GuestNames
	}
	if ds.CheckOutDate != nil {
		cell.CheckOutDate = ds.CheckOutDate.Format(booking.DateLayout)
	}
	return cell
}

// RoomRowResponse is one room's row across the month.
type RoomRowResponse struct {
	RoomID     string            `json:"room_id"`
	RoomNumber string            `json:"room_number"`
	RoomType   string            `json:"room_type"`
	Days       []DayCellResponse `json:"days"`
}

type CalendarResponse struct {
	Month string            `json:"month"`
	Rooms []RoomRowResponse `json:"rooms"`
}
