package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/expense"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/cache"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

const (
	dashboardKey = "report:dashboard"
	revenueKey   = "report:revenue:%d"
	cacheTTL     = 2 * time.Minute
)

// CachePatterns are the key patterns to drop when the underlying booking or
// room data changes.
var CachePatterns = []string{"report:*"}

type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Daily(ctx context.Context, date string) (*DailyReport, error)
	Monthly(ctx context.Context, month string) (*MonthlyReport, error)
	Revenue(ctx context.Context, year int) ([]RevenuePoint, error)
	// ExportYear builds an xlsx workbook with the revenue and expense
	// breakdowns for the year.
	ExportYear(ctx context.Context, year int) ([]byte, string, error)
}

type service struct {
	repo     Repository
	rooms    room.Service
	expenses expense.Service
	cache    *cache.Cache
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, rooms room.Service, expenses expense.Service, c *cache.Cache, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		rooms:    rooms,
		expenses: expenses,
		cache:    c,
		log:      log,
		now:      time.Now,
	}
}

func (s *service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if err := s.cache.GetJSON(ctx, dashboardKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("dashboard cache read failed", zap.Error(err))
	}

	counts, err := s.rooms.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	income, err := s.repo.TodayIncome(ctx, today)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.UpcomingConfirmed(ctx, today)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		AvailableRooms: counts[room.StatusAvailable],
		OccupiedRooms:  counts[room.StatusOccupied],
		ReservedRooms:  counts[room.StatusReserved],
		CleaningRooms:  counts[room.StatusCleaning],
		TodayIncome:    income,
		UpcomingCount:  upcoming,
	}
	stats.TotalRooms = stats.AvailableRooms + stats.OccupiedRooms + stats.ReservedRooms + stats.CleaningRooms

	if err := s.cache.SetJSON(ctx, dashboardKey, stats, cacheTTL); err != nil {
		s.log.Warn("dashboard cache write failed", zap.Error(err))
	}
	return stats, nil
}

func (s *service) Daily(ctx context.Context, date string) (*DailyReport, error) {
	day := s.today()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = parsed
	}
	return s.repo.Daily(ctx, day)
}

func (s *service) Monthly(ctx context.Context, month string) (*MonthlyReport, error) {
	now := s.now().UTC()
	year, m := now.Year(), now.Month()
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		year, m = parsed.Year(), parsed.Month()
	}
	return s.repo.Monthly(ctx, year, m)
}

func (s *service) Revenue(ctx context.Context, year int) ([]RevenuePoint, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidYear
	}

	key := fmt.Sprintf(revenueKey, year)
	var cached []RevenuePoint
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("revenue cache read failed", zap.Error(err))
	}

	revenue, err := s.repo.RevenueByMonth(ctx, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, err
	}

	points := make([]RevenuePoint, 12)
	for i := range points {
		points[i] = RevenuePoint{
			Month:    i + 1,
			Revenue:  revenue[i],
			Expenses: expenses[i].Total,
			Net:      revenue[i].Sub(expenses[i].Total),
		}
	}

	if err := s.cache.SetJSON(ctx, key, points, cacheTTL); err != nil {
		s.log.Warn("revenue cache write failed", zap.Error(err))
	}
	return points, nil
}

func (s *service) ExportYear(ctx context.Context, year int) ([]byte, string, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}

	points, err := s.Revenue(ctx, year)
	if err != nil {
		return nil, "", err
	}
	expenses, err := s.expenses.List(ctx, yearFilter(year))
	if err != nil {
		return nil, "", err
	}

	content, err := buildWorkbook(year, points, expenses)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("dangara-report-%d.xlsx", year), nil
}

func yearFilter(year int) expense.Filter {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	return expense.Filter{DateFrom: &from, DateTo: &to}
}
