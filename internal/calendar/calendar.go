// Package calendar derives per-room, per-day occupancy state from the booking
// ledger. All functions here are pure; the HTTP layer feeds them the bookings
// it fetched and renders the resulting grid.
package calendar

import (
	"time"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
)

// CachePatterns matches every cached month grid, so booking mutations can
// drop them alongside the report caches.
var CachePatterns = []string{"calendar:*"}

// Status is the derived, date-scoped occupancy state of a room.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusOccupied  Status = "occupied"
)

// DayStatus is the occupancy of one room on one day, with the responsible
// booking attached when the room is not available.
type DayStatus struct {
	Status       Status
	Booking      *booking.Booking
	CheckOutDate *time.Time
}

// RoomStatus scans bookings for an active one covering day on the given room.
// Booking status maps Checked In -> occupied, Confirmed -> reserved. The
// ledger invariant allows at most one active booking per room and day; if it
// is ever violated the first match wins.
func RoomStatus(roomID string, day time.Time, bookings []*booking.Booking) DayStatus {
	for _, b := range bookings {
		if b.RoomID != roomID || !b.Status.Active() {
			continue
		}
		if b.Covers(day) {
			return matched(b)
		}
	}
	return DayStatus{Status: StatusAvailable}
}

// Index pre-buckets active bookings by room so that rendering a month grid is
// O(rooms × days × bookings-per-room) instead of rescanning the whole ledger
// for every cell.
type Index struct {
	byRoom map[string][]*booking.Booking
}

// NewIndex builds an Index from the booking ledger. Inactive bookings
// (checked out, cancelled) are dropped up front.
func NewIndex(bookings []*booking.Booking) *Index {
	byRoom := make(map[string][]*booking.Booking)
	for _, b := range bookings {
		if !b.Status.Active() {
			continue
		}
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	return &Index{byRoom: byRoom}
}

// Status returns the derived occupancy of the room on the given day.
func (ix *Index) Status(roomID string, day time.Time) DayStatus {
	for _, b := range ix.byRoom[roomID] {
		if b.Covers(day) {
			return matched(b)
		}
	}
	return DayStatus{Status: StatusAvailable}
}

func matched(b *booking.Booking) DayStatus {
	status := StatusReserved
	if b.Status == booking.StatusCheckedIn {
		status = StatusOccupied
	}
	checkOut := booking.Day(b.CheckOutDate)
	return DayStatus{
		Status:       status,
		Booking:      b,
		CheckOutDate: &checkOut,
	}
}

// DaysInMonth returns every day of the month containing ref, in order.
func DaysInMonth(ref time.Time) []time.Time {
	y, m, _ := ref.UTC().Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, -1).Day()

	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}
