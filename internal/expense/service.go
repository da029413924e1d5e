package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Title       string
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

type UpdateRequest struct {
	Title       *string
	Category    *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, filter Filter) ([]*Expense, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*Summary, error)
	MonthlyTotals(ctx context.Context, year int) ([]MonthTotal, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Expense, error) {
	if !IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	e := &Expense{
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Expense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Expense, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Title != nil {
		e.Title = *req.Title
		updated = true
	}
	if req.Category != nil {
		if !IsValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		e.Category = *req.Category
		updated = true
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		e.Amount = *req.Amount
		updated = true
	}
	if req.Date != nil {
		e.Date = *req.Date
		updated = true
	}
	if req.Description != nil {
		e.Description = *req.Description
		updated = true
	}
	if !updated {
		return nil, ErrNoData
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return s.repo.Summary(ctx, today)
}

func (s *service) MonthlyTotals(ctx context.Context, year int) ([]MonthTotal, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}
	return s.repo.MonthlyTotals(ctx, year)
}
