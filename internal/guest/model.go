package guest

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/apperror"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/request"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "guest not found")
	ErrNoData       = apperror.New(http.StatusBadRequest, "no data to update")
	ErrImmutable    = apperror.New(http.StatusBadRequest, "identity fields cannot be changed once set")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "uploaded file is not a readable image")
	ErrDocsNotFound = apperror.New(http.StatusNotFound, "document not found")
)

// Guest is one registered hotel guest. Identity fields (id_type, id_number,
// passport_id, birth_date) are immutable once set; contact and address fields
// stay editable.
type Guest struct {
	ID         string
	FullName   string
	Phone      string
	IDType     string
	IDNumber   string
	PassportID string
	BirthDate  *time.Time
	Nation     string
	Region     string
	Street     string
	CreatedAt  time.Time
}

// ListItem is a guest row enriched with the stay summary the guest list
// displays. The aggregate is computed server-side in one query.
type ListItem struct {
	Guest
	LastRoom   string
	TotalSpent decimal.Decimal
}

// StayRecord is one entry of a guest's booking history.
type StayRecord struct {
	BookingID    string
	RoomID       string
	RoomNumber   string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Nights       int
	TotalPrice   decimal.Decimal
	Status       string
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
	CreatedAt    time.Time
}

// ArchiveRecord is a stay record joined with its guest, as shown by the
// cross-guest stay archive.
type ArchiveRecord struct {
	StayRecord
	GuestID   string
	GuestName string
}

// ArchiveFilter holds the archive's search, filter, and sort parameters.
type ArchiveFilter struct {
	request.ListParams
	Query    string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	SortBy   string
}

// Document is one uploaded ID/passport scan.
type Document struct {
	ID        string
	GuestID   string
	FilePath  string
	ThumbPath string
	CreatedAt time.Time
}
