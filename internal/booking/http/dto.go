package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
)

type BookingResponse struct {
	ID           string          `json:"id"`
	RoomID       string          `json:"room_id"`
	RoomNumber   string          `json:"room_number"`
	GuestIDs     []string        `json:"guest_ids"`
	GuestNames   []string        `json:"guest_names"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CheckedInAt  *string         `json:"checked_in_at,omitempty"`
	CheckedOutAt *string         `json:"checked_out_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomNumber:   b.RoomNumber,
		GuestIDs:     b.GuestIDs,
		GuestNames:   b.GuestNames,
		CheckInDate:  b.CheckInDate.Format(booking.DateLayout),
		CheckOutDate: b.CheckOutDate.Format(booking.DateLayout),
		Nights:       b.Nights(),
		Status:       string(b.Status),
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt,
	}
	if b.CheckedInAt != nil {
		d := b.CheckedInAt.Format(booking.DateLayout)
		resp.CheckedInAt = &d
	}
	if b.CheckedOutAt != nil {
		d := b.CheckedOutAt.Format(booking.DateLayout)
		resp.CheckedOutAt = &d
	}
	return resp
}

type CreateBookingBody struct {
	RoomID       string   `json:"room_id" binding:"required,uuid"`
	GuestIDs     []string `json:"guest_ids" binding:"required,min=1,dive,uuid"`
	CheckInDate  string   `json:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate string   `json:"check_out_date" binding:"required,datetime=2006-01-02"`
}

type UpdateBookingBody struct {
	CheckInDate  *string `json:"check_in_date" binding:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string `json:"check_out_date" binding:"omitempty,datetime=2006-01-02"`
}

type ListBookingsRequest struct {
	Status  string `form:"status" binding:"omitempty,oneof=Confirmed 'Checked In' 'Checked Out' Cancelled"`
	RoomID  string `form:"room_id" binding:"omitempty,uuid"`
	GuestID string `form:"guest_id" binding:"omitempty,uuid"`
}

type TransferBody struct {
	NewRoomID string `json:"new_room_id" binding:"required,uuid"`
}

type TransferResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	FromRoomID   string    `json:"from_room_id"`
	ToRoomID     string    `json:"to_room_id"`
	NewBookingID *string   `json:"new_booking_id,omitempty"`
	State        string    `json:"state"`
	Detail       string    `json:"detail,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewTransferResponse(t *booking.Transfer) TransferResponse {
	return TransferResponse{
		ID:           t.ID,
		BookingID:    t.BookingID,
		FromRoomID:   t.FromRoomID,
		ToRoomID:     t.ToRoomID,
		NewBookingID: t.NewBookingID,
		State:        string(t.State),
		Detail:       t.Detail,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// CheckOutResponse carries the final bill alongside the closed booking.
type CheckOutResponse struct {
	Booking BookingResponse `json:"booking"`
	Total   decimal.Decimal `json:"total"`
}
