package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/guest"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

type fakeRepo struct {
	bookings  map[string]*Booking
	transfers map[string]*Transfer
	seq       int

	// createErr makes the next Create fail, for exercising partial
	// transfer failure.
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings:  map[string]*Booking{},
		transfers: map[string]*Transfer{},
	}
}

func (r *fakeRepo) Create(ctx context.Context, b *Booking) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.seq++
	b.ID = fmt.Sprintf("b%d", r.seq)
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	for _, b := range r.bookings {
		if b.ID == excludeBookingID || b.RoomID != roomID || !b.Status.Active() {
			continue
		}
		if b.CheckInDate.Before(checkOut) && b.CheckOutDate.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateTransfer(ctx context.Context, t *Transfer) error {
	r.seq++
	t.ID = fmt.Sprintf("t%d", r.seq)
	cp := *t
	r.transfers[t.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateTransfer(ctx context.Context, t *Transfer) error {
	cp := *t
	r.transfers[t.ID] = &cp
	return nil
}

func (r *fakeRepo) ListIncompleteTransfers(ctx context.Context) ([]*Transfer, error) {
	var out []*Transfer
	for _, t := range r.transfers {
		if t.State == TransferIncomplete {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRooms struct {
	rooms    map[string]*room.Room
	cleaning map[string]bool
}

func newFakeRooms(rooms ...*room.Room) *fakeRooms {
	f := &fakeRooms{rooms: map[string]*room.Room{}, cleaning: map[string]bool{}}
	for _, rm := range rooms {
		f.rooms[rm.ID] = rm
	}
	return f
}

func (f *fakeRooms) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

func (f *fakeRooms) MarkCleaning(ctx context.Context, id string) error {
	f.cleaning[id] = true
	return nil
}

func (f *fakeRooms) GetView(ctx context.Context, id string) (*room.View, error) {
	rm, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &room.View{Room: *rm, Status: room.StatusAvailable}, nil
}

func (f *fakeRooms) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	return nil, nil
}
func (f *fakeRooms) List(ctx context.Context, status room.Status) ([]*room.View, error) {
	return nil, nil
}
func (f *fakeRooms) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	return nil, nil
}
func (f *fakeRooms) Delete(ctx context.Context, id string) error        { return nil }
func (f *fakeRooms) MarkAvailable(ctx context.Context, id string) error { return nil }
func (f *fakeRooms) StatusCounts(ctx context.Context) (map[room.Status]int, error) {
	return nil, nil
}

type fakeGuests struct {
	guests map[string]*guest.Guest
}

func newFakeGuests(ids ...string) *fakeGuests {
	f := &fakeGuests{guests: map[string]*guest.Guest{}}
	for _, id := range ids {
		f.guests[id] = &guest.Guest{ID: id, FullName: "Guest " + id}
	}
	return f
}

func (f *fakeGuests) GetByID(ctx context.Context, id string) (*guest.Guest, error) {
	g, ok := f.guests[id]
	if !ok {
		return nil, guest.ErrNotFound
	}
	return g, nil
}

func (f *fakeGuests) Create(ctx context.Context, req guest.CreateRequest) (*guest.Guest, error) {
	return nil, nil
}
func (f *fakeGuests) List(ctx context.Context, search string) ([]*guest.ListItem, error) {
	return nil, nil
}
func (f *fakeGuests) Update(ctx context.Context, id string, req guest.UpdateRequest) (*guest.Guest, error) {
	return nil, nil
}
func (f *fakeGuests) History(ctx context.Context, guestID string) ([]*guest.StayRecord, error) {
	return nil, nil
}
func (f *fakeGuests) Archive(ctx context.Context, filter guest.ArchiveFilter) ([]*guest.ArchiveRecord, int, error) {
	return nil, 0, nil
}
func (f *fakeGuests) UploadDocument(ctx context.Context, guestID string, content io.Reader) (*guest.Document, error) {
	return nil, nil
}
func (f *fakeGuests) ListDocuments(ctx context.Context, guestID string) ([]*guest.Document, error) {
	return nil, nil
}
func (f *fakeGuests) OpenDocument(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	return nil, nil
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(t *testing.T) (*service, *fakeRepo, *fakeRooms) {
	t.Helper()
	repo := newFakeRepo()
	rooms := newFakeRooms(
		&room.Room{ID: "room-1", RoomNumber: "101", Capacity: 2, PricePerNight: decimal.NewFromInt(200)},
		&room.Room{ID: "room-2", RoomNumber: "102", Capacity: 2, PricePerNight: decimal.NewFromInt(300)},
		&room.Room{ID: "room-small", RoomNumber: "103", Capacity: 1, PricePerNight: decimal.NewFromInt(150)},
	)
	guests := newFakeGuests("g1", "g2", "g3")
	svc := NewService(repo, rooms, guests, zap.NewNop(), nil).(*service)
	svc.now = func() time.Time { return day("2025-03-10") }
	return svc, repo, rooms
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("total is nights times room rate", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g1"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-13"),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, b.Status)
		assert.Equal(t, 3, b.Nights())
		assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(600)), "got %s", b.TotalPrice)
		assert.Equal(t, "101", b.RoomNumber)
	})

	t.Run("requires at least one guest", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Create(ctx, CreateRequest{
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-11"),
		})
		assert.ErrorIs(t, err, ErrNoGuests)
	})

	t.Run("rejects check-out on or before check-in", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g1"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-10"),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("rejects guest count above room capacity", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g1", "g2"},
			RoomID:       "room-small",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-11"),
		})
		assert.ErrorIs(t, err, ErrOverCapacity)
	})

	t.Run("rejects overlapping active booking", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g1"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-15"),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g2"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-14"),
			CheckOutDate: day("2025-03-16"),
		})
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})

	t.Run("back to back bookings do not overlap", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g1"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-15"),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g2"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-15"),
			CheckOutDate: day("2025-03-18"),
		})
		assert.NoError(t, err)
	})

	t.Run("unknown room and guest", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g1"},
			RoomID:       "nope",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-11"),
		})
		assert.ErrorIs(t, err, ErrRoomNotFound)

		_, err = svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"nobody"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-11"),
		})
		assert.ErrorIs(t, err, ErrGuestNotFound)
	})
}

func mustCreate(t *testing.T, svc *service, roomID string, in, out string) *Booking {
	t.Helper()
	b, err := svc.Create(context.Background(), CreateRequest{
		GuestIDs:     []string{"g1"},
		RoomID:       roomID,
		CheckInDate:  day(in),
		CheckOutDate: day(out),
	})
	require.NoError(t, err)
	return b
}

func TestLifecycleTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("check-in only from Confirmed", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")

		checked, err := svc.CheckIn(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedIn, checked.Status)
		require.NotNil(t, checked.CheckedInAt)
		assert.Equal(t, day("2025-03-10"), *checked.CheckedInAt)

		_, err = svc.CheckIn(ctx, b.ID)
		assert.ErrorIs(t, err, ErrNotConfirmed)

		stored := repo.bookings[b.ID]
		assert.Equal(t, StatusCheckedIn, stored.Status)
	})

	t.Run("check-out only from Checked In and flags housekeeping", func(t *testing.T) {
		svc, repo, rooms := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")

		_, _, err := svc.CheckOut(ctx, b.ID)
		assert.ErrorIs(t, err, ErrNotCheckedIn)
		assert.Equal(t, StatusConfirmed, repo.bookings[b.ID].Status, "failed transition must not mutate")

		_, err = svc.CheckIn(ctx, b.ID)
		require.NoError(t, err)

		out, total, err := svc.CheckOut(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedOut, out.Status)
		assert.True(t, total.Equal(decimal.NewFromInt(400)), "got %s", total)
		require.NotNil(t, out.CheckedOutAt)
		assert.True(t, rooms.cleaning["room-1"], "room should be flagged for cleaning")
	})

	t.Run("cancel only from Confirmed", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")

		require.NoError(t, svc.Cancel(ctx, b.ID))
		assert.Equal(t, StatusCancelled, repo.bookings[b.ID].Status)

		assert.ErrorIs(t, svc.Cancel(ctx, b.ID), ErrNotCancellable)

		b2 := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")
		_, err := svc.CheckIn(ctx, b2.ID)
		require.NoError(t, err)
		assert.ErrorIs(t, svc.Cancel(ctx, b2.ID), ErrNotCancellable)
	})

	t.Run("cancelled booking frees the room", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")
		require.NoError(t, svc.Cancel(ctx, b.ID))

		_, err := svc.Create(ctx, CreateRequest{
			GuestIDs:     []string{"g2"},
			RoomID:       "room-1",
			CheckInDate:  day("2025-03-10"),
			CheckOutDate: day("2025-03-12"),
		})
		assert.NoError(t, err)
	})
}

func TestUpdateDates(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the total", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")

		newOut := day("2025-03-15")
		updated, err := svc.UpdateDates(ctx, b.ID, UpdateRequest{CheckOutDate: &newOut})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Nights())
		assert.True(t, updated.TotalPrice.Equal(decimal.NewFromInt(1000)), "got %s", updated.TotalPrice)
	})

	t.Run("own dates do not count as overlap", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")

		newOut := day("2025-03-11")
		_, err := svc.UpdateDates(ctx, b.ID, UpdateRequest{CheckOutDate: &newOut})
		assert.NoError(t, err)
	})

	t.Run("rejects extension into another booking", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")
		mustCreate(t, svc, "room-1", "2025-03-14", "2025-03-16")

		newOut := day("2025-03-15")
		_, err := svc.UpdateDates(ctx, b.ID, UpdateRequest{CheckOutDate: &newOut})
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})

	t.Run("rejects completed and cancelled bookings", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-12")
		require.NoError(t, svc.Cancel(ctx, b.ID))

		newOut := day("2025-03-15")
		_, err := svc.UpdateDates(ctx, b.ID, UpdateRequest{CheckOutDate: &newOut})
		assert.ErrorIs(t, err, ErrNotUpdatable)
	})
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	checkedInBooking := func(t *testing.T, svc *service) *Booking {
		t.Helper()
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-14")
		checked, err := svc.CheckIn(ctx, b.ID)
		require.NoError(t, err)
		return checked
	}

	t.Run("moves guest to the new room for the remaining nights", func(t *testing.T) {
		svc, repo, rooms := newTestService(t)
		b := checkedInBooking(t, svc)

		svc.now = func() time.Time { return day("2025-03-12") }
		newBooking, err := svc.Transfer(ctx, b.ID, "room-2")
		require.NoError(t, err)

		assert.Equal(t, StatusCheckedIn, newBooking.Status)
		assert.Equal(t, "room-2", newBooking.RoomID)
		assert.Equal(t, day("2025-03-12"), newBooking.CheckInDate)
		assert.Equal(t, day("2025-03-14"), newBooking.CheckOutDate)
		assert.True(t, newBooking.TotalPrice.Equal(decimal.NewFromInt(600)), "2 nights at 300, got %s", newBooking.TotalPrice)

		old, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedOut, old.Status)
		assert.True(t, rooms.cleaning["room-1"])

		require.Len(t, repo.transfers, 1)
		for _, tr := range repo.transfers {
			assert.Equal(t, TransferCompleted, tr.State)
			require.NotNil(t, tr.NewBookingID)
			assert.Equal(t, newBooking.ID, *tr.NewBookingID)
		}
	})

	t.Run("rejects transfer to the same room", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		b := checkedInBooking(t, svc)

		_, err := svc.Transfer(ctx, b.ID, "room-1")
		assert.ErrorIs(t, err, ErrSameRoom)
		assert.Empty(t, repo.transfers)
		assert.Equal(t, StatusCheckedIn, repo.bookings[b.ID].Status)
	})

	t.Run("rejects transfer of a booking that is not checked in", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := mustCreate(t, svc, "room-1", "2025-03-10", "2025-03-14")

		_, err := svc.Transfer(ctx, b.ID, "room-2")
		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("rejects occupied target room without touching the booking", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		b := checkedInBooking(t, svc)
		mustCreate(t, svc, "room-2", "2025-03-11", "2025-03-13")

		svc.now = func() time.Time { return day("2025-03-12") }
		_, err := svc.Transfer(ctx, b.ID, "room-2")
		assert.ErrorIs(t, err, ErrRoomUnavailable)
		assert.Equal(t, StatusCheckedIn, repo.bookings[b.ID].Status)
		assert.Empty(t, repo.transfers)
	})

	t.Run("rejects transfer on the last night", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := checkedInBooking(t, svc)

		svc.now = func() time.Time { return day("2025-03-14") }
		_, err := svc.Transfer(ctx, b.ID, "room-2")
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("partial failure is persisted and surfaced distinctly", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		b := checkedInBooking(t, svc)

		svc.now = func() time.Time { return day("2025-03-12") }
		repo.createErr = errors.New("connection reset")

		_, err := svc.Transfer(ctx, b.ID, "room-2")
		assert.ErrorIs(t, err, ErrTransferIncomplete)

		// The check-out already committed. That is the whole point of
		// surfacing the incomplete state instead of a generic failure.
		old, getErr := repo.GetByID(ctx, b.ID)
		require.NoError(t, getErr)
		assert.Equal(t, StatusCheckedOut, old.Status)

		incomplete, listErr := svc.IncompleteTransfers(ctx)
		require.NoError(t, listErr)
		require.Len(t, incomplete, 1)
		assert.Equal(t, b.ID, incomplete[0].BookingID)
		assert.Equal(t, "room-1", incomplete[0].FromRoomID)
		assert.Equal(t, "room-2", incomplete[0].ToRoomID)
		assert.Contains(t, incomplete[0].Detail, "connection reset")
	})
}
