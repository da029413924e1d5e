package room

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "room not found")
	ErrNumberTaken = apperror.New(http.StatusBadRequest, "room number already exists")
	ErrInvalidType = apperror.New(http.StatusBadRequest, "unknown room type")
	ErrNoData      = apperror.New(http.StatusBadRequest, "no data to update")
	ErrOccupied    = apperror.New(http.StatusConflict, "room is currently occupied")
)

// Status is the status a room is reported with. Occupancy (Occupied/Reserved)
// is always derived from the booking ledger; Cleaning is a housekeeping flag
// and is only reported when the room is not occupied.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusReserved  Status = "Reserved"
	StatusOccupied  Status = "Occupied"
	StatusCleaning  Status = "Cleaning"
)

// RoomTypes is the closed set of room categories.
var RoomTypes = []string{
	"1 kishilik",
	"2 kishilik",
	"3 kishilik",
	"4 kishilik",
	"5 kishilik",
	"VIP",
	"Lux",
}

// IsValidType reports whether t is a known room type.
func IsValidType(t string) bool {
	for _, rt := range RoomTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Room is one physical hotel room.
type Room struct {
	ID            string
	RoomNumber    string
	RoomType      string
	Capacity      int
	PricePerNight decimal.Decimal
	Description   string
	Cleaning      bool
	CreatedAt     time.Time
}
