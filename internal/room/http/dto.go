package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

type RoomResponse struct {
	ID            string          `json:"id"`
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	Capacity      int             `json:"capacity"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewRoomResponse(v *room.View) RoomResponse {
	return RoomResponse{
		ID:            v.ID,
		RoomNumber:    v.RoomNumber,
		RoomType:      v.RoomType,
		Capacity:      v.Capacity,
		PricePerNight: v.PricePerNight,
		Description:   v.Description,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt,
	}
}

type CreateRoomBody struct {
	RoomNumber    string          `json:"room_number" binding:"required"`
	RoomType      string          `json:"room_type" binding:"required"`
	Capacity      int             `json:"capacity" binding:"required,min=1"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
	Description   string          `json:"description"`
}

type UpdateRoomBody struct {
	RoomNumber    *string          `json:"room_number"`
	RoomType      *string          `json:"room_type"`
	Capacity      *int             `json:"capacity" binding:"omitempty,min=1"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	Description   *string          `json:"description"`
}

type ListRoomsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=Available Reserved Occupied Cleaning"`
}

type StatusCountsResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Occupied  int `json:"occupied"`
	Cleaning  int `json:"cleaning"`
}
