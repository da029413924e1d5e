package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/guest"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/request"
)

type GuestResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	IDType     string    `json:"id_type"`
	IDNumber   string    `json:"id_number,omitempty"`
	PassportID string    `json:"passport_id,omitempty"`
	BirthDate  *string   `json:"birth_date,omitempty"`
	Nation     string    `json:"nation,omitempty"`
	Region     string    `json:"region,omitempty"`
	Street     string    `json:"street,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewGuestResponse(g *guest.Guest) GuestResponse {
	resp := GuestResponse{
		ID:         g.ID,
		FullName:   g.FullName,
		Phone:      g.Phone,
		IDType:     g.IDType,
		IDNumber:   g.IDNumber,
		PassportID: g.PassportID,
		Nation:     g.Nation,
		Region:     g.Region,
		Street:     g.Street,
		CreatedAt:  g.CreatedAt,
	}
	if g.BirthDate != nil {
		d := g.BirthDate.Format(booking.DateLayout)
		resp.BirthDate = &d
	}
	return resp
}

// GuestListItemResponse adds the stay summary shown on the guest list.
type GuestListItemResponse struct {
	GuestResponse
	LastRoom   string          `json:"last_room,omitempty"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

func NewGuestListItemResponse(item *guest.ListItem) GuestListItemResponse {
	return GuestListItemResponse{
		GuestResponse: NewGuestResponse(&item.Guest),
		LastRoom:      item.LastRoom,
		TotalSpent:    item.TotalSpent,
	}
}

type CreateGuestBody struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	IDType     string `json:"id_type" binding:"omitempty,oneof=passport id_card birth_certificate driver_license"`
	IDNumber   string `json:"id_number"`
	PassportID string `json:"passport_id"`
	BirthDate  string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Nation     string `json:"nation"`
	Region     string `json:"region"`
	Street     string `json:"street"`
}

type UpdateGuestBody struct {
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	IDType     *string `json:"id_type" binding:"omitempty,oneof=passport id_card birth_certificate driver_license"`
	IDNumber   *string `json:"id_number"`
	PassportID *string `json:"passport_id"`
	BirthDate  *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Nation     *string `json:"nation"`
	Region     *string `json:"region"`
	Street     *string `json:"street"`
}

type StayResponse struct {
	BookingID    string          `json:"booking_id"`
	RoomID       string          `json:"room_id"`
	RoomNumber   string          `json:"room_number"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

func NewStayResponse(s *guest.StayRecord) StayResponse {
	return StayResponse{
		BookingID:    s.BookingID,
		RoomID:       s.RoomID,
		RoomNumber:   s.RoomNumber,
		CheckInDate:  s.CheckInDate.Format(booking.DateLayout),
		CheckOutDate: s.CheckOutDate.Format(booking.DateLayout),
		Nights:       s.Nights,
		Status:       s.Status,
		TotalPrice:   s.TotalPrice,
	}
}

type ArchiveRecordResponse struct {
	StayResponse
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
}

func NewArchiveRecordResponse(r *guest.ArchiveRecord) ArchiveRecordResponse {
	return ArchiveRecordResponse{
		StayResponse: NewStayResponse(&r.StayRecord),
		GuestID:      r.GuestID,
		GuestName:    r.GuestName,
	}
}

// ListArchiveRequest defines query parameters for the stay archive.
type ListArchiveRequest struct {
	request.ListParams
	Query    string `form:"q"`
	Status   string `form:"status" binding:"omitempty,oneof=Confirmed 'Checked In' 'Checked Out' Cancelled"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=check_in_date check_out_date guest_name room_number total_price"`
}

type DocumentResponse struct {
	ID        string    `json:"id"`
	GuestID   string    `json:"guest_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDocumentResponse(d *guest.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		GuestID:   d.GuestID,
		CreatedAt: d.CreatedAt,
	}
}
