package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error

	// HasOverlap checks if there is any active booking for the room whose
	// [check_in, check_out) interval intersects the given range.
	// excludeBookingID is used during updates to ignore the booking itself.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)

	CreateTransfer(ctx context.Context, t *Transfer) error
	UpdateTransfer(ctx context.Context, t *Transfer) error
	ListIncompleteTransfers(ctx context.Context) ([]*Transfer, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// bookingColumns is the select list shared by GetByID and List. Guest ids and
// names are aggregated so one row carries the full multi-guest booking.
var bookingColumns = []string{
	"b.id", "b.room_id", "r.room_number",
	"array_remove(array_agg(g.id::text ORDER BY g.full_name), NULL)",
	"array_remove(array_agg(g.full_name ORDER BY g.full_name), NULL)",
	"b.check_in_date", "b.check_out_date", "b.status", "b.total_price::text",
	"b.checked_in_at", "b.checked_out_at", "b.created_at",
}

func bookingQuery() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("bookings b").
		Join("rooms r ON b.room_id = r.id").
		LeftJoin("booking_guests bg ON bg.booking_id = b.id").
		LeftJoin("guests g ON g.id = bg.guest_id").
		GroupBy("b.id", "r.room_number")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var total string
	if err := row.Scan(
		&b.ID, &b.RoomID, &b.RoomNumber,
		&b.GuestIDs, &b.GuestNames,
		&b.CheckInDate, &b.CheckOutDate, &b.Status, &total,
		&b.CheckedInAt, &b.CheckedOutAt, &b.CreatedAt,
	); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total_price failed: %w", err)
	}
	b.TotalPrice = price
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql.Insert("bookings").
		Columns("room_id", "check_in_date", "check_out_date", "status", "total_price", "checked_in_at", "checked_out_at").
		Values(b.RoomID, b.CheckInDate, b.CheckOutDate, b.Status, b.TotalPrice.String(), b.CheckedInAt, b.CheckedOutAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	insert := psql.Insert("booking_guests").Columns("booking_id", "guest_id")
	for _, guestID := range b.GuestIDs {
		insert = insert.Values(b.ID, guestID)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build booking guests query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("link booking guests failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := bookingQuery().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	query := bookingQuery().OrderBy("b.created_at DESC")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.GuestID != "" {
		query = query.Where("b.id IN (SELECT booking_id FROM booking_guests WHERE guest_id = ?)", filter.GuestID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	query, args, err := psql.Update("bookings").
		Set("check_in_date", b.CheckInDate).
		Set("check_out_date", b.CheckOutDate).
		Set("status", b.Status).
		Set("total_price", b.TotalPrice.String()).
		Set("checked_in_at", b.CheckedInAt).
		Set("checked_out_at", b.CheckedOutAt).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	// Half-open intervals overlap iff NewStart < ExistingEnd AND NewEnd > ExistingStart.
	subQuery := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": []Status{StatusConfirmed, StatusCheckedIn}}).
		Where(squirrel.Lt{"check_in_date": checkOut}).
		Where(squirrel.Gt{"check_out_date": checkIn})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) CreateTransfer(ctx context.Context, t *Transfer) error {
	query, args, err := psql.Insert("room_transfers").
		Columns("booking_id", "from_room_id", "to_room_id", "state", "detail").
		Values(t.BookingID, t.FromRoomID, t.ToRoomID, t.State, t.Detail).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create transfer query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create transfer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateTransfer(ctx context.Context, t *Transfer) error {
	query, args, err := psql.Update("room_transfers").
		Set("state", t.State).
		Set("new_booking_id", t.NewBookingID).
		Set("detail", t.Detail).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update transfer query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update transfer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListIncompleteTransfers(ctx context.Context) ([]*Transfer, error) {
	query, args, err := psql.Select(
		"id", "booking_id", "from_room_id", "to_room_id", "new_booking_id",
		"state", "detail", "created_at", "updated_at",
	).
		From("room_transfers").
		Where(squirrel.Eq{"state": TransferIncomplete}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list transfers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers failed: %w", err)
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		var t Transfer
		if err := rows.Scan(
			&t.ID, &t.BookingID, &t.FromRoomID, &t.ToRoomID, &t.NewBookingID,
			&t.State, &t.Detail, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer failed: %w", err)
		}
		transfers = append(transfers, &t)
	}
	return transfers, rows.Err()
}
