package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/salonkit/settlement-api/internal/application/service"
	"github.com/salonkit/settlement-api/internal/config"
	"github.com/salonkit/settlement-api/internal/infrastructure/database"
	"github.com/salonkit/settlement-api/internal/infrastructure/lock"
	"github.com/salonkit/settlement-api/internal/infrastructure/repository"
	"github.com/salonkit/settlement-api/internal/presentation/http/handler"
	"github.com/salonkit/settlement-api/internal/presentation/http/routes"
	"github.com/salonkit/settlement-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Settlement mutations are serialized per settlement. Redis backs the
	// lock across instances; a single instance can run without Redis.
	var locker service.Locker
	if rdb, err := database.NewRedisClient(&cfg.Redis); err != nil {
		log.Printf("Warning: Redis unavailable, using in-process locks: %v", err)
		locker = lock.NewLocalLocker()
	} else {
		locker = lock.NewRedisLocker(rdb, cfg.Settlement.LockTTL)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	cashDrawerRepo := repository.NewCashDrawerRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, orgRepo, jwtManager)
	statsService := service.NewStatsService(statsRepo, orgRepo)
	settlementService := service.NewSettlementService(uow, settlementRepo, cashDrawerRepo, orgRepo, statsService, locker)
	paymentService := service.NewPaymentService(paymentRepo)
	orderService := service.NewOrderService(orderRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Settlement:  handler.NewSettlementHandler(settlementService, cfg.Settlement.SummaryDays),
		Payment:     handler.NewPaymentHandler(paymentService),
		Order:       handler.NewOrderHandler(orderService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
