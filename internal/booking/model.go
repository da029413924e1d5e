package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound       = apperror.New(http.StatusNotFound, "room not found")
	ErrGuestNotFound      = apperror.New(http.StatusNotFound, "guest not found")
	ErrInvalidDateRange   = apperror.New(http.StatusBadRequest, "check-out date must be after check-in date")
	ErrInvalidDateFormat  = apperror.New(http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
	ErrRoomUnavailable    = apperror.New(http.StatusConflict, "room already booked for the selected dates")
	ErrOverCapacity       = apperror.New(http.StatusBadRequest, "guest count exceeds room capacity")
	ErrNotConfirmed       = apperror.New(http.StatusBadRequest, "booking must be Confirmed to check-in")
	ErrNotCheckedIn       = apperror.New(http.StatusBadRequest, "booking must be Checked In to check-out")
	ErrNotCancellable     = apperror.New(http.StatusBadRequest, "only Confirmed bookings can be cancelled")
	ErrNotUpdatable       = apperror.New(http.StatusBadRequest, "cannot update completed or cancelled booking")
	ErrNoGuests           = apperror.New(http.StatusBadRequest, "at least one guest is required")
	ErrSameRoom           = apperror.New(http.StatusBadRequest, "transfer target must be a different room")
	ErrTransferIncomplete = apperror.New(http.StatusConflict, "room transfer incomplete: guest checked out but new booking failed; manual recovery required")
)

// DateLayout is the wire format for all booking dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date into a UTC day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed  Status = "Confirmed"
	StatusCheckedIn  Status = "Checked In"
	StatusCheckedOut Status = "Checked Out"
	StatusCancelled  Status = "Cancelled"
)

// Active reports whether the booking occupies its room for its date range.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// Booking is a reservation of one room for one or more guests over a
// half-open [check-in, check-out) date interval.
type Booking struct {
	ID           string
	RoomID       string
	RoomNumber   string
	GuestIDs     []string
	GuestNames   []string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       Status
	TotalPrice   decimal.Decimal
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
	CreatedAt    time.Time
}

// Nights returns the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(Day(b.CheckOutDate).Sub(Day(b.CheckInDate)).Hours() / 24)
}

// Covers reports whether the booking's half-open date interval contains day:
// check-in inclusive, check-out exclusive. A guest leaving on day D does not
// occupy day D.
func (b *Booking) Covers(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(b.CheckInDate)) && d.Before(Day(b.CheckOutDate))
}

// Filter defines filter options for listing bookings.
type Filter struct {
	Status  Status
	RoomID  string
	GuestID string
}

// TransferState is the persisted state of a room-transfer saga.
type TransferState string

const (
	TransferPending    TransferState = "pending"
	TransferCompleted  TransferState = "completed"
	TransferIncomplete TransferState = "incomplete"
)

// Transfer records a room-transfer attempt. The row is written before the
// first step runs, so a crash mid-saga leaves inspectable evidence instead of
// a silently lost guest.
type Transfer struct {
	ID           string
	BookingID    string
	FromRoomID   string
	ToRoomID     string
	NewBookingID *string
	State        TransferState
	Detail       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
