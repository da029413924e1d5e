package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/auth"
	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	bookingHttp "github.com/dangarahotel/frontdesk-backend/internal/booking/http"
	calendarHttp "github.com/dangarahotel/frontdesk-backend/internal/calendar/http"
	"github.com/dangarahotel/frontdesk-backend/internal/expense"
	expenseHttp "github.com/dangarahotel/frontdesk-backend/internal/expense/http"
	"github.com/dangarahotel/frontdesk-backend/internal/guest"
	guestHttp "github.com/dangarahotel/frontdesk-backend/internal/guest/http"
	"github.com/dangarahotel/frontdesk-backend/internal/permission"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/cache"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/logger"
	"github.com/dangarahotel/frontdesk-backend/internal/report"
	reportHttp "github.com/dangarahotel/frontdesk-backend/internal/report/http"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
	roomHttp "github.com/dangarahotel/frontdesk-backend/internal/room/http"
	"github.com/dangarahotel/frontdesk-backend/internal/user"
	userHttp "github.com/dangarahotel/frontdesk-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the API surface.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	UserService    user.Service
	RoomService    room.Service
	GuestService   guest.Service
	BookingService booking.Service
	ExpenseService expense.Service
	ReportService  report.Service
	Cache          *cache.Cache
	JWTManager     *auth.JWTManager
	Logger         *zap.Logger
}

// NewRouter assembles middleware and registers every module's routes.
// Each page-level route group is gated by the matching permission key.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && len(cfg.ProdOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin()
	page := func(key permission.Key) []gin.HandlerFunc {
		return []gin.HandlerFunc{authMiddleware, RequirePage(cfg.UserService, key)}
	}

	userHandler := userHttp.NewHandler(cfg.UserService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	guestHandler := guestHttp.NewHandler(cfg.GuestService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	calendarHandler := calendarHttp.NewHandler(cfg.BookingService, cfg.RoomService, cfg.Cache)
	expenseHandler := expenseHttp.NewHandler(cfg.ExpenseService)
	reportHandler := reportHttp.NewHandler(cfg.ReportService)

	api := r.Group("/api")
	{
		userHttp.RegisterRoutes(api, userHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(api, roomHandler, page(permission.KeyRooms)...)
		guestHttp.RegisterRoutes(api, guestHandler, page(permission.KeyGuests)...)
		bookingHttp.RegisterRoutes(api, bookingHandler, page(permission.KeyBookings)...)
		calendarHttp.RegisterRoutes(api, calendarHandler, page(permission.KeyCalendar)...)
		// Expenses live on the reports page in the admin panel.
		expenseHttp.RegisterRoutes(api, expenseHandler, page(permission.KeyReports)...)
		reportHttp.RegisterRoutes(api, reportHandler, page(permission.KeyDashboard), page(permission.KeyReports))
	}

	return r
}
