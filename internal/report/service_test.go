package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/expense"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

type fakeRepo struct {
	todayIncome decimal.Decimal
	upcoming    int
	revenue     [12]decimal.Decimal
}

func (f *fakeRepo) TodayIncome(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	return f.todayIncome, nil
}

func (f *fakeRepo) UpcomingConfirmed(ctx context.Context, from time.Time) (int, error) {
	return f.upcoming, nil
}

func (f *fakeRepo) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	return &DailyReport{Date: day}, nil
}

func (f *fakeRepo) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	return &MonthlyReport{Year: year, Month: month}, nil
}

func (f *fakeRepo) RevenueByMonth(ctx context.Context, year int) ([12]decimal.Decimal, error) {
	return f.revenue, nil
}

type fakeRooms struct {
	counts map[room.Status]int
}

func (f *fakeRooms) StatusCounts(ctx context.Context) (map[room.Status]int, error) {
	return f.counts, nil
}

func (f *fakeRooms) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	return nil, nil
}
func (f *fakeRooms) GetByID(ctx context.Context, id string) (*room.Room, error) { return nil, nil }
func (f *fakeRooms) GetView(ctx context.Context, id string) (*room.View, error) { return nil, nil }
func (f *fakeRooms) List(ctx context.Context, status room.Status) ([]*room.View, error) {
	return nil, nil
}
func (f *fakeRooms) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	return nil, nil
}
func (f *fakeRooms) Delete(ctx context.Context, id string) error        { return nil }
func (f *fakeRooms) MarkCleaning(ctx context.Context, id string) error  { return nil }
func (f *fakeRooms) MarkAvailable(ctx context.Context, id string) error { return nil }

type fakeExpenses struct {
	monthly []expense.MonthTotal
	entries []*expense.Expense
}

func (f *fakeExpenses) MonthlyTotals(ctx context.Context, year int) ([]expense.MonthTotal, error) {
	return f.monthly, nil
}

func (f *fakeExpenses) List(ctx context.Context, filter expense.Filter) ([]*expense.Expense, error) {
	return f.entries, nil
}

func (f *fakeExpenses) Create(ctx context.Context, req expense.CreateRequest) (*expense.Expense, error) {
	return nil, nil
}
func (f *fakeExpenses) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	return nil, nil
}
func (f *fakeExpenses) Update(ctx context.Context, id string, req expense.UpdateRequest) (*expense.Expense, error) {
	return nil, nil
}
func (f *fakeExpenses) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeExpenses) Summary(ctx context.Context) (*expense.Summary, error) {
	return nil, nil
}

func flatMonthly(amount int64) []expense.MonthTotal {
	out := make([]expense.MonthTotal, 12)
	for i := range out {
		out[i] = expense.MonthTotal{Month: i + 1, Total: decimal.NewFromInt(amount)}
	}
	return out
}

func TestDashboard(t *testing.T) {
	repo := &fakeRepo{
		todayIncome: decimal.NewFromInt(850),
		upcoming:    4,
	}
	rooms := &fakeRooms{counts: map[room.Status]int{
		room.StatusAvailable: 7,
		room.StatusOccupied:  3,
		room.StatusReserved:  2,
		room.StatusCleaning:  1,
	}}
	svc := NewService(repo, rooms, &fakeExpenses{monthly: flatMonthly(0)}, nil, zap.NewNop())

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, stats.TotalRooms)
	assert.Equal(t, 7, stats.AvailableRooms)
	assert.Equal(t, 3, stats.OccupiedRooms)
	assert.Equal(t, 1, stats.CleaningRooms)
	assert.True(t, stats.TodayIncome.Equal(decimal.NewFromInt(850)))
	assert.Equal(t, 4, stats.UpcomingCount)
}

func TestRevenue(t *testing.T) {
	repo := &fakeRepo{}
	repo.revenue[0] = decimal.NewFromInt(1000)
	repo.revenue[5] = decimal.NewFromInt(2500)

	svc := NewService(repo, &fakeRooms{}, &fakeExpenses{monthly: flatMonthly(300)}, nil, zap.NewNop())

	points, err := svc.Revenue(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, points, 12)

	assert.Equal(t, 1, points[0].Month)
	assert.True(t, points[0].Net.Equal(decimal.NewFromInt(700)), "got %s", points[0].Net)
	assert.True(t, points[5].Net.Equal(decimal.NewFromInt(2200)), "got %s", points[5].Net)
	assert.True(t, points[11].Net.Equal(decimal.NewFromInt(-300)), "got %s", points[11].Net)
}

func TestRevenueRejectsNonsenseYear(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeRooms{}, &fakeExpenses{}, nil, zap.NewNop())
	_, err := svc.Revenue(context.Background(), 1837)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestExportYearProducesWorkbook(t *testing.T) {
	repo := &fakeRepo{}
	repo.revenue[2] = decimal.NewFromInt(4000)
	expenses := &fakeExpenses{
		monthly: flatMonthly(100),
		entries: []*expense.Expense{
			{
				Title:    "detergent",
				Category: "supplies",
				Amount:   decimal.NewFromInt(40),
				Date:     time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	svc := NewService(repo, &fakeRooms{}, expenses, nil, zap.NewNop())

	content, filename, err := svc.ExportYear(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, "dangara-report-2025.xlsx", filename)
	assert.NotEmpty(t, content)

	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}
