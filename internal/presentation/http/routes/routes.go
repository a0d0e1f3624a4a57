package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonkit/settlement-api/internal/config"
	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/internal/presentation/http/handler"
	"github.com/salonkit/settlement-api/internal/presentation/http/middleware"
	"github.com/salonkit/settlement-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Settlement  *handler.SettlementHandler
	Payment     *handler.PaymentHandler
	Order       *handler.OrderHandler
	Appointment *handler.AppointmentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.OrganizationMiddleware())

		// Per-organization rate limiter
		rateLimiter := middleware.NewOrganizationRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/refresh", h.Auth.Refresh)
	protected.GET("/profile", h.Auth.Me)

	registerSettlementRoutes(protected, h, deps)
	registerPaymentRoutes(protected, h, deps)
	registerOrderRoutes(protected, h, deps)
	registerAppointmentRoutes(protected, h)
}

func registerSettlementRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	settlements := protected.Group("/settlements")
	{
		settlements.GET("", h.Settlement.List)
		settlements.GET("/by-date", h.Settlement.GetByDate)
		settlements.GET("/summary", h.Settlement.Summary)
		settlements.GET("/operators", h.Settlement.Operators)
		settlements.GET("/stats/daily", h.Settlement.DailyStats)

		// Mutations accept an Idempotency-Key header so a retried open or
		// close replays the original response instead of running twice.
		settlements.POST("/open", idempotent, h.Settlement.Open)
		settlements.POST("/:id/cash-operations", idempotent, h.Settlement.AddCashOperation)
		settlements.POST("/:id/close", idempotent, h.Settlement.Close)

		settlements.GET("/:id", h.Settlement.Get)
		settlements.GET("/:id/cash-drawer-records", h.Settlement.CashDrawerRecords)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Create)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
	}
}

func registerAppointmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	appointments := protected.Group("/appointments")
	{
		appointments.GET("", h.Appointment.List)
		appointments.POST("", h.Appointment.Create)
		appointments.PUT("/:id/status", h.Appointment.UpdateStatus)
	}
}
