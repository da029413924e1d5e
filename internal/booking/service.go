package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/guest"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

type CreateRequest struct {
	GuestIDs     []string
	RoomID       string
	CheckInDate  time.Time
	CheckOutDate time.Time
}

type UpdateRequest struct {
	CheckInDate  *time.Time
	CheckOutDate *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	UpdateDates(ctx context.Context, id string, req UpdateRequest) (*Booking, error)

	// CheckIn moves a Confirmed booking to Checked In.
	CheckIn(ctx context.Context, id string) (*Booking, error)
	// CheckOut moves a Checked In booking to Checked Out and flags the room
	// for housekeeping. The booking's total is returned for display.
	CheckOut(ctx context.Context, id string) (*Booking, decimal.Decimal, error)
	// Cancel voids a Confirmed booking.
	Cancel(ctx context.Context, id string) error

	// Transfer moves a checked-in guest to another room: check-out of the
	// current booking, then create+check-in of a new booking on the target
	// room for the remaining date range. The saga state is persisted before
	// the first step so a partial failure is detectable and surfaced
	// distinctly; no automatic rollback is attempted because the check-out
	// is already committed.
	Transfer(ctx context.Context, bookingID, newRoomID string) (*Booking, error)

	IncompleteTransfers(ctx context.Context) ([]*Transfer, error)
}

type service struct {
	repo     Repository
	rooms    room.Service
	guests   guest.Service
	log      *zap.Logger
	now      func() time.Time
	onChange func(ctx context.Context)
}

// NewService wires the booking lifecycle controller. onChange is invoked
// after every successful mutation so the caller can drop derived caches
// (dashboard, calendar); pass nil when there is nothing to invalidate.
func NewService(repo Repository, rooms room.Service, guests guest.Service, log *zap.Logger, onChange func(ctx context.Context)) Service {
	if onChange == nil {
		onChange = func(context.Context) {}
	}
	return &service{
		repo:     repo,
		rooms:    rooms,
		guests:   guests,
		log:      log,
		now:      time.Now,
		onChange: onChange,
	}
}

func (s *service) today() time.Time {
	return Day(s.now())
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if len(req.GuestIDs) == 0 {
		return nil, ErrNoGuests
	}

	checkIn := Day(req.CheckInDate)
	checkOut := Day(req.CheckOutDate)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if len(req.GuestIDs) > rm.Capacity {
		return nil, ErrOverCapacity.WithMessage(fmt.Sprintf(
			"room capacity is %d, %d guests selected", rm.Capacity, len(req.GuestIDs)))
	}

	for _, guestID := range req.GuestIDs {
		if _, err := s.guests.GetByID(ctx, guestID); err != nil {
			if errors.Is(err, guest.ErrNotFound) {
				return nil, ErrGuestNotFound
			}
			return nil, err
		}
	}

	overlap, err := s.repo.HasOverlap(ctx, req.RoomID, checkIn, checkOut, "")
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrRoomUnavailable
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	b := &Booking{
		RoomID:       req.RoomID,
		GuestIDs:     req.GuestIDs,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       StatusConfirmed,
		TotalPrice:   rm.PricePerNight.Mul(decimal.NewFromInt(int64(nights))),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.RoomNumber = rm.RoomNumber

	s.onChange(ctx)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateDates(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.Active() {
		return nil, ErrNotUpdatable
	}

	checkIn := Day(b.CheckInDate)
	checkOut := Day(b.CheckOutDate)
	if req.CheckInDate != nil {
		checkIn = Day(*req.CheckInDate)
	}
	if req.CheckOutDate != nil {
		checkOut = Day(*req.CheckOutDate)
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	overlap, err := s.repo.HasOverlap(ctx, b.RoomID, checkIn, checkOut, b.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrRoomUnavailable
	}

	rm, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	b.CheckInDate = checkIn
	b.CheckOutDate = checkOut
	b.TotalPrice = rm.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.onChange(ctx)
	return b, nil
}

func (s *service) CheckIn(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	today := s.today()
	b.Status = StatusCheckedIn
	b.CheckedInAt = &today

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.onChange(ctx)
	return b, nil
}

func (s *service) CheckOut(ctx context.Context, id string) (*Booking, decimal.Decimal, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if b.Status != StatusCheckedIn {
		return nil, decimal.Zero, ErrNotCheckedIn
	}

	today := s.today()
	b.Status = StatusCheckedOut
	b.CheckedOutAt = &today

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, decimal.Zero, err
	}

	// Housekeeping follows every check-out. Best effort: the booking
	// transition already committed.
	if err := s.rooms.MarkCleaning(ctx, b.RoomID); err != nil {
		s.log.Warn("failed to flag room for cleaning",
			zap.String("room_id", b.RoomID), zap.Error(err))
	}

	s.onChange(ctx)
	return b, b.TotalPrice, nil
}

func (s *service) Cancel(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != StatusConfirmed {
		return ErrNotCancellable
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		return err
	}

	s.onChange(ctx)
	return nil
}

func (s *service) Transfer(ctx context.Context, bookingID, newRoomID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusCheckedIn {
		return nil, ErrNotCheckedIn
	}
	if b.RoomID == newRoomID {
		return nil, ErrSameRoom
	}

	newRoom, err := s.rooms.GetByID(ctx, newRoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if len(b.GuestIDs) > newRoom.Capacity {
		return nil, ErrOverCapacity.WithMessage(fmt.Sprintf(
			"room capacity is %d, booking has %d guests", newRoom.Capacity, len(b.GuestIDs)))
	}

	// Remaining range: tonight through the original check-out. A transfer
	// on the last night would leave an empty range, which Create rejects.
	today := s.today()
	checkOut := Day(b.CheckOutDate)
	if !checkOut.After(today) {
		return nil, ErrInvalidDateRange
	}

	overlap, err := s.repo.HasOverlap(ctx, newRoomID, today, checkOut, "")
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrRoomUnavailable
	}

	// Persist the saga intent before the first irreversible step.
	transfer := &Transfer{
		BookingID:  b.ID,
		FromRoomID: b.RoomID,
		ToRoomID:   newRoomID,
		State:      TransferPending,
	}
	if err := s.repo.CreateTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	// Step 1: check out of the current room. Committed server-side once done.
	if _, _, err := s.CheckOut(ctx, b.ID); err != nil {
		transfer.State = TransferIncomplete
		transfer.Detail = fmt.Sprintf("check-out failed: %v", err)
		s.finishTransfer(ctx, transfer)
		return nil, err
	}

	// Step 2: create and check in the replacement booking.
	newBooking, err := s.Create(ctx, CreateRequest{
		GuestIDs:     b.GuestIDs,
		RoomID:       newRoomID,
		CheckInDate:  today,
		CheckOutDate: checkOut,
	})
	if err != nil {
		transfer.State = TransferIncomplete
		transfer.Detail = fmt.Sprintf("create replacement booking failed: %v", err)
		s.finishTransfer(ctx, transfer)
		s.log.Error("room transfer left guest without active booking",
			zap.String("transfer_id", transfer.ID),
			zap.String("booking_id", b.ID),
			zap.Error(err))
		return nil, ErrTransferIncomplete
	}

	checkedIn, err := s.CheckIn(ctx, newBooking.ID)
	if err != nil {
		transfer.State = TransferIncomplete
		transfer.NewBookingID = &newBooking.ID
		transfer.Detail = fmt.Sprintf("check-in of replacement booking failed: %v", err)
		s.finishTransfer(ctx, transfer)
		return nil, ErrTransferIncomplete
	}

	transfer.State = TransferCompleted
	transfer.NewBookingID = &checkedIn.ID
	s.finishTransfer(ctx, transfer)

	return checkedIn, nil
}

// finishTransfer persists the saga outcome. Failing to record the outcome is
// logged but never masks the transfer result itself.
func (s *service) finishTransfer(ctx context.Context, t *Transfer) {
	if err := s.repo.UpdateTransfer(ctx, t); err != nil {
		s.log.Error("failed to record transfer state",
			zap.String("transfer_id", t.ID),
			zap.String("state", string(t.State)),
			zap.Error(err))
	}
}

func (s *service) IncompleteTransfers(ctx context.Context) ([]*Transfer, error) {
	return s.repo.ListIncompleteTransfers(ctx)
}
