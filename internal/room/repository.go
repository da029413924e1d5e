package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	SetCleaning(ctx context.Context, id string, cleaning bool) error

	// Occupancy derives each room's occupancy for the given day straight
	// from the booking ledger. Rooms without an active booking covering the
	// day are absent from the map.
	Occupancy(ctx context.Context, day time.Time) (map[string]Status, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var roomColumns = []string{
	"id", "room_number", "room_type", "capacity", "price_per_night::text",
	"description", "cleaning", "created_at",
}

func scanRoom(row pgx.Row) (*Room, error) {
	var r Room
	var price string
	if err := row.Scan(
		&r.ID, &r.RoomNumber, &r.RoomType, &r.Capacity, &price,
		&r.Description, &r.Cleaning, &r.CreatedAt,
	); err != nil {
		return nil, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price_per_night failed: %w", err)
	}
	r.PricePerNight = p
	return &r, nil
}

func (r *pgxRepository) Create(ctx context.Context, room *Room) error {
	query, args, err := psql.Insert("rooms").
		Columns("room_number", "room_type", "capacity", "price_per_night", "description", "cleaning").
		Values(room.RoomNumber, room.RoomType, room.Capacity, room.PricePerNight.String(), room.Description, room.Cleaning).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&room.ID, &room.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query, args, err := psql.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	room, err := scanRoom(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return room, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Room, error) {
	query, args, err := psql.Select(roomColumns...).
		From("rooms").
		OrderBy("room_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, room *Room) error {
	query, args, err := psql.Update("rooms").
		Set("room_number", room.RoomNumber).
		Set("room_type", room.RoomType).
		Set("capacity", room.Capacity).
		Set("price_per_night", room.PricePerNight.String()).
		Set("description", room.Description).
		Where(squirrel.Eq{"id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetCleaning(ctx context.Context, id string, cleaning bool) error {
	query, args, err := psql.Update("rooms").
		Set("cleaning", cleaning).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set cleaning query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set cleaning failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Occupancy(ctx context.Context, day time.Time) (map[string]Status, error) {
	// Checked In beats Confirmed when the ledger invariant is violated.
	query, args, err := psql.Select(
		"room_id",
		"CASE WHEN bool_or(status = 'Checked In') THEN 'Occupied' ELSE 'Reserved' END",
	).
		From("bookings").
		Where(squirrel.Eq{"status": []string{"Confirmed", "Checked In"}}).
		Where(squirrel.LtOrEq{"check_in_date": day}).
		Where(squirrel.Gt{"check_out_date": day}).
		GroupBy("room_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build occupancy query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query occupancy failed: %w", err)
	}
	defer rows.Close()

	occupancy := make(map[string]Status)
	for rows.Next() {
		var roomID string
		var status Status
		if err := rows.Scan(&roomID, &status); err != nil {
			return nil, fmt.Errorf("scan occupancy failed: %w", err)
		}
		occupancy[roomID] = status
	}
	return occupancy, rows.Err()
}
