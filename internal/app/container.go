package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/api"
	"github.com/dangarahotel/frontdesk-backend/internal/auth"
	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/calendar"
	"github.com/dangarahotel/frontdesk-backend/internal/expense"
	"github.com/dangarahotel/frontdesk-backend/internal/guest"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/cache"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/storage"
	"github.com/dangarahotel/frontdesk-backend/internal/report"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
	"github.com/dangarahotel/frontdesk-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	DBPool       *pgxpool.Pool
	Cache        *cache.Cache
	Storage      storage.Storage
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	images := storage.NewImageProcessor()

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, jwtManager, cfg.Logger)

	// Room module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo)

	// Guest module
	guestRepo := guest.NewPgxRepository(cfg.DBPool)
	guestService := guest.NewService(guestRepo, cfg.Storage, images)

	// Booking module. Mutations drop the derived report and calendar caches.
	derivedCaches := append(append([]string{}, report.CachePatterns...), calendar.CachePatterns...)
	invalidate := func(ctx context.Context) {
		if err := cfg.Cache.Invalidate(ctx, derivedCaches...); err != nil {
			cfg.Logger.Warn("cache invalidation failed", zap.Error(err))
		}
	}
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, guestService, cfg.Logger, invalidate)

	// Expense module
	expenseRepo := expense.NewPgxRepository(cfg.DBPool)
	expenseService := expense.NewService(expenseRepo)

	// Report module
	reportRepo := report.NewPgxRepository(cfg.DBPool)
	reportService := report.NewService(reportRepo, roomService, expenseService, cfg.Cache, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		RoomService:    roomService,
		GuestService:   guestService,
		BookingService: bookingService,
		ExpenseService: expenseService,
		ReportService:  reportService,
		Cache:          cfg.Cache,
		JWTManager:     jwtManager,
		Logger:         cfg.Logger,
	})

	return &Container{
		Router:      router,
		UserService: userService,
	}
}
