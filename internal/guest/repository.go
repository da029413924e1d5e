package guest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, g *Guest) error
	GetByID(ctx context.Context, id string) (*Guest, error)
	List(ctx context.Context, search string) ([]*ListItem, error)
	Update(ctx context.Context, g *Guest) error
	History(ctx context.Context, guestID string) ([]*StayRecord, error)
	Archive(ctx context.Context, filter ArchiveFilter) ([]*ArchiveRecord, int, error)

	AddDocument(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context, guestID string) ([]*Document, error)
	GetDocument(ctx context.Context, id string) (*Document, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var guestColumns = []string{
	"id", "full_name", "phone", "id_type", "id_number", "passport_id",
	"birth_date", "nation", "region", "street", "created_at",
}

func scanGuest(row pgx.Row, g *Guest) error {
	return row.Scan(
		&g.ID, &g.FullName, &g.Phone, &g.IDType, &g.IDNumber, &g.PassportID,
		&g.BirthDate, &g.Nation, &g.Region, &g.Street, &g.CreatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, g *Guest) error {
	query, args, err := psql.Insert("guests").
		Columns("full_name", "phone", "id_type", "id_number", "passport_id", "birth_date", "nation", "region", "street").
		Values(g.FullName, g.Phone, g.IDType, g.IDNumber, g.PassportID, g.BirthDate, g.Nation, g.Region, g.Street).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create guest query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt); err != nil {
		return fmt.Errorf("create guest failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Guest, error) {
	query, args, err := psql.Select(guestColumns...).
		From("guests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get guest query failed: %w", err)
	}

	var g Guest
	if err := scanGuest(r.pool.QueryRow(ctx, query, args...), &g); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get guest failed: %w", err)
	}
	return &g, nil
}

// summaryJoin aggregates each guest's stay ledger into the last occupied room
// and the money spent across non-cancelled bookings.
const summaryJoin = `LEFT JOIN (
	SELECT bg.guest_id,
	       (array_agg(r.room_number ORDER BY b.check_in_date DESC))[1] AS last_room,
	       COALESCE(sum(b.total_price), 0) AS total_spent
	FROM booking_guests bg
	JOIN bookings b ON b.id = bg.booking_id AND b.status <> 'Cancelled'
	JOIN rooms r ON r.id = b.room_id
	GROUP BY bg.guest_id
) s ON s.guest_id = g.id`

func (r *pgxRepository) List(ctx context.Context, search string) ([]*ListItem, error) {
	query := psql.Select(
		"g.id", "g.full_name", "g.phone", "g.id_type", "g.id_number", "g.passport_id",
		"g.birth_date", "g.nation", "g.region", "g.street", "g.created_at",
		"COALESCE(s.last_room, '')", "COALESCE(s.total_spent, 0)::text",
	).
		From("guests g").
		JoinClause(summaryJoin).
		OrderBy("g.created_at DESC")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"g.full_name": pattern},
			squirrel.ILike{"g.phone": pattern},
			squirrel.ILike{"g.passport_id": pattern},
			squirrel.ILike{"g.id_number": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list guests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list guests failed: %w", err)
	}
	defer rows.Close()

	var items []*ListItem
	for rows.Next() {
		var item ListItem
		var totalSpent string
		if err := rows.Scan(
			&item.ID, &item.FullName, &item.Phone, &item.IDType, &item.IDNumber, &item.PassportID,
			&item.BirthDate, &item.Nation, &item.Region, &item.Street, &item.CreatedAt,
			&item.LastRoom, &totalSpent,
		); err != nil {
			return nil, fmt.Errorf("scan guest failed: %w", err)
		}

		spent, err := decimal.NewFromString(totalSpent)
		if err != nil {
			return nil, fmt.Errorf("parse total_spent failed: %w", err)
		}
		item.TotalSpent = spent
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, g *Guest) error {
	query, args, err := psql.Update("guests").
		Set("full_name", g.FullName).
		Set("phone", g.Phone).
		Set("id_type", g.IDType).
		Set("id_number", g.IDNumber).
		Set("passport_id", g.PassportID).
		Set("birth_date", g.BirthDate).
		Set("nation", g.Nation).
		Set("region", g.Region).
		Set("street", g.Street).
		Where(squirrel.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update guest query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update guest failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var stayColumns = []string{
	"b.id", "b.room_id", "r.room_number",
	"b.check_in_date", "b.check_out_date",
	"(b.check_out_date - b.check_in_date)",
	"b.total_price::text", "b.status",
	"b.checked_in_at", "b.checked_out_at", "b.created_at",
}

func scanStay(row pgx.Row, s *StayRecord, extra ...any) error {
	dest := []any{
		&s.BookingID, &s.RoomID, &s.RoomNumber,
		&s.CheckInDate, &s.CheckOutDate,
		&s.Nights,
	}
	var total string
	dest = append(dest, &total, &s.Status, &s.CheckedInAt, &s.CheckedOutAt, &s.CreatedAt)
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return err
	}

	price, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("parse total_price failed: %w", err)
	}
	s.TotalPrice = price
	return nil
}

func (r *pgxRepository) History(ctx context.Context, guestID string) ([]*StayRecord, error) {
	query, args, err := psql.Select(stayColumns...).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id").
		Join("booking_guests bg ON bg.booking_id = b.id").
		Where(squirrel.Eq{"bg.guest_id": guestID}).
		OrderBy("b.check_in_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build guest history query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("guest history failed: %w", err)
	}
	defer rows.Close()

	var stays []*StayRecord
	for rows.Next() {
		var s StayRecord
		if err := scanStay(rows, &s); err != nil {
			return nil, fmt.Errorf("scan stay failed: %w", err)
		}
		stays = append(stays, &s)
	}
	return stays, rows.Err()
}

// archiveSortColumns whitelists sortable columns for the archive.
var archiveSortColumns = map[string]string{
	"check_in_date":  "b.check_in_date",
	"check_out_date": "b.check_out_date",
	"total_price":    "b.total_price",
	"created_at":     "b.created_at",
	"guest_name":     "g.full_name",
}

func (r *pgxRepository) Archive(ctx context.Context, filter ArchiveFilter) ([]*ArchiveRecord, int, error) {
	filter.Normalize()

	query := psql.Select(append(stayColumns,
		"g.id", "g.full_name",
		"count(*) OVER() AS total_count",
	)...).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id").
		Join("booking_guests bg ON bg.booking_id = b.id").
		Join("guests g ON g.id = bg.guest_id")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"g.full_name": pattern},
			squirrel.ILike{"g.phone": pattern},
			squirrel.ILike{"r.room_number": pattern},
		})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.check_in_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in_date": *filter.DateTo})
	}

	orderBy, ok := archiveSortColumns[filter.SortBy]
	if !ok {
		orderBy = "b.check_in_date"
	}
	orderDir := "DESC"
	if filter.SortDir == "asc" {
		orderDir = "ASC"
	}

	query = query.OrderBy(orderBy + " " + orderDir).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build archive query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("archive query failed: %w", err)
	}
	defer rows.Close()

	var records []*ArchiveRecord
	var total int
	for rows.Next() {
		var rec ArchiveRecord
		if err := scanStay(rows, &rec.StayRecord, &rec.GuestID, &rec.GuestName, &total); err != nil {
			return nil, 0, fmt.Errorf("scan archive record failed: %w", err)
		}
		records = append(records, &rec)
	}
	return records, total, rows.Err()
}

func (r *pgxRepository) AddDocument(ctx context.Context, d *Document) error {
	query, args, err := psql.Insert("guest_documents").
		Columns("guest_id", "file_path", "thumb_path").
		Values(d.GuestID, d.FilePath, d.ThumbPath).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add document query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&d.ID, &d.CreatedAt); err != nil {
		return fmt.Errorf("add document failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListDocuments(ctx context.Context, guestID string) ([]*Document, error) {
	query, args, err := psql.Select("id", "guest_id", "file_path", "thumb_path", "created_at").
		From("guest_documents").
		Where(squirrel.Eq{"guest_id": guestID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.GuestID, &d.FilePath, &d.ThumbPath, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document failed: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func (r *pgxRepository) GetDocument(ctx context.Context, id string) (*Document, error) {
	query, args, err := psql.Select("id", "guest_id", "file_path", "thumb_path", "created_at").
		From("guest_documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get document query failed: %w", err)
	}

	var d Document
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&d.ID, &d.GuestID, &d.FilePath, &d.ThumbPath, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocsNotFound
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &d, nil
}
