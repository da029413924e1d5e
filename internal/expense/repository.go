package expense

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, filter Filter) ([]*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error

	Summary(ctx context.Context, today time.Time) (*Summary, error)
	MonthlyTotals(ctx context.Context, year int) ([]MonthTotal, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var expenseColumns = []string{
	"id", "title", "category", "amount::text", "expense_date", "description", "created_at",
}

func scanExpense(row pgx.Row) (*Expense, error) {
	var (
		e      Expense
		amount string
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Category, &amount, &e.Date, &e.Description, &e.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Expense) error {
	sql, args, err := psql.Insert("expenses").
		Columns("title", "category", "amount", "expense_date", "description").
		Values(e.Title, e.Category, e.Amount.String(), e.Date, e.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Expense, error) {
	sql, args, err := psql.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	e, err := scanExpense(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Expense, error) {
	q := psql.Select(expenseColumns...).
		From("expenses").
		OrderBy("expense_date DESC", "created_at DESC")

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"expense_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"expense_date": *filter.DateTo})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, e *Expense) error {
	sql, args, err := psql.Update("expenses").
		Set("title", e.Title).
		Set("category", e.Category).
		Set("amount", e.Amount.String()).
		Set("expense_date", e.Date).
		Set("description", e.Description).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete("expenses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Summary(ctx context.Context, today time.Time) (*Summary, error) {
	const totalsQuery = `
		SELECT
			COALESCE(sum(amount) FILTER (WHERE expense_date = $1), 0)::text,
			COALESCE(sum(amount) FILTER (WHERE date_trunc('month', expense_date) = date_trunc('month', $1::date)), 0)::text,
			COALESCE(sum(amount) FILTER (WHERE date_trunc('year', expense_date) = date_trunc('year', $1::date)), 0)::text
		FROM expenses`

	var todayStr, monthStr, yearStr string
	if err := r.pool.QueryRow(ctx, totalsQuery, today).Scan(&todayStr, &monthStr, &yearStr); err != nil {
		return nil, err
	}

	s := &Summary{ByCategory: map[string]decimal.Decimal{}}
	var err error
	if s.Today, err = decimal.NewFromString(todayStr); err != nil {
		return nil, err
	}
	if s.ThisMonth, err = decimal.NewFromString(monthStr); err != nil {
		return nil, err
	}
	if s.ThisYear, err = decimal.NewFromString(yearStr); err != nil {
		return nil, err
	}

	const byCategoryQuery = `
		SELECT category, sum(amount)::text
		FROM expenses
		WHERE date_trunc('month', expense_date) = date_trunc('month', $1::date)
		GROUP BY category`

	rows, err := r.pool.Query(ctx, byCategoryQuery, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			total    string
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		if s.ByCategory[category], err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
	}
	return s, rows.Err()
}

func (r *pgxRepository) MonthlyTotals(ctx context.Context, year int) ([]MonthTotal, error) {
	const query = `
		SELECT extract(month FROM expense_date)::int, sum(amount)::text
		FROM expenses
		WHERE extract(year FROM expense_date) = $1
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Always return all 12 months so the chart has a stable x-axis.
	totals := make([]MonthTotal, 12)
	for i := range totals {
		totals[i] = MonthTotal{Month: i + 1, Total: decimal.Zero}
	}
	for rows.Next() {
		var (
			month int
			sum   string
		)
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, err
		}
		total, err := decimal.NewFromString(sum)
		if err != nil {
			return nil, err
		}
		if month >= 1 && month <= 12 {
			totals[month-1].Total = total
		}
	}
	return totals, rows.Err()
}
