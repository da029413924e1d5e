package report

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository aggregates over the booking ledger. Income is always attributed
// to the check-in date: a stay is earned when the guest arrives.
type Repository interface {
	TodayIncome(ctx context.Context, day time.Time) (decimal.Decimal, error)
	UpcomingConfirmed(ctx context.Context, from time.Time) (int, error)
	Daily(ctx context.Context, day time.Time) (*DailyReport, error)
	Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error)
	RevenueByMonth(ctx context.Context, year int) ([12]decimal.Decimal, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanDecimal(row pgx.Row) (decimal.Decimal, error) {
	var s string
	if err := row.Scan(&s); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(s)
}

func (r *pgxRepository) TodayIncome(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(sum(total_price), 0)::text
		FROM bookings
		WHERE checked_in_at = $1`
	return scanDecimal(r.pool.QueryRow(ctx, query, day))
}

func (r *pgxRepository) UpcomingConfirmed(ctx context.Context, from time.Time) (int, error) {
	const query = `
		SELECT count(*)
		FROM bookings
		WHERE status = 'Confirmed' AND check_in_date >= $1`
	var count int
	err := r.pool.QueryRow(ctx, query, from).Scan(&count)
	return count, err
}

func (r *pgxRepository) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	const query = `
		SELECT
			count(*) FILTER (WHERE checked_in_at = $1),
			count(*) FILTER (WHERE checked_out_at = $1),
			COALESCE(sum(total_price) FILTER (WHERE checked_in_at = $1), 0)::text,
			COALESCE((
				SELECT count(DISTINCT bg.guest_id)
				FROM booking_guests bg
				JOIN bookings b2 ON b2.id = bg.booking_id
				WHERE b2.checked_in_at = $1
			), 0)
		FROM bookings`

	rep := &DailyReport{Date: day}
	var revenue string
	if err := r.pool.QueryRow(ctx, query, day).Scan(&rep.CheckIns, &rep.CheckOuts, &revenue, &rep.Guests); err != nil {
		return nil, err
	}
	var err error
	if rep.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *pgxRepository) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	// Occupied nights clamp each stay to the month window; stays spanning
	// month boundaries contribute only their in-month nights.
	const query = `
		SELECT
			COALESCE((
				SELECT count(DISTINCT bg.guest_id)
				FROM booking_guests bg
				JOIN bookings b2 ON b2.id = bg.booking_id
				WHERE b2.status <> 'Cancelled'
				  AND b2.check_in_date < $2 AND b2.check_out_date > $1
			), 0),
			COALESCE(sum(
				LEAST(check_out_date, $2::date) - GREATEST(check_in_date, $1::date)
			) FILTER (WHERE status <> 'Cancelled' AND check_in_date < $2 AND check_out_date > $1), 0),
			COALESCE(sum(total_price) FILTER (WHERE checked_in_at >= $1 AND checked_in_at < $2), 0)::text
		FROM bookings`

	rep := &MonthlyReport{Year: year, Month: month}
	var income string
	if err := r.pool.QueryRow(ctx, query, monthStart, nextMonth).Scan(&rep.Guests, &rep.OccupiedNights, &income); err != nil {
		return nil, err
	}
	var err error
	if rep.Income, err = decimal.NewFromString(income); err != nil {
		return nil, err
	}

	const topTypeQuery = `
		SELECT r.room_type
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status <> 'Cancelled'
		  AND b.check_in_date < $2 AND b.check_out_date > $1
		GROUP BY r.room_type
		ORDER BY count(*) DESC, r.room_type ASC
		LIMIT 1`

	err = r.pool.QueryRow(ctx, topTypeQuery, monthStart, nextMonth).Scan(&rep.TopRoomType)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return rep, nil
}

func (r *pgxRepository) RevenueByMonth(ctx context.Context, year int) ([12]decimal.Decimal, error) {
	var totals [12]decimal.Decimal
	for i := range totals {
		totals[i] = decimal.Zero
	}

	const query = `
		SELECT extract(month FROM checked_in_at)::int, sum(total_price)::text
		FROM bookings
		WHERE extract(year FROM checked_in_at) = $1
		GROUP BY 1`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return totals, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			month int
			sum   string
		)
		if err := rows.Scan(&month, &sum); err != nil {
			return totals, err
		}
		total, err := decimal.NewFromString(sum)
		if err != nil {
			return totals, err
		}
		if month >= 1 && month <= 12 {
			totals[month-1] = total
		}
	}
	return totals, rows.Err()
}
