package database

import (
	"fmt"
	"log"

	"github.com/salonkit/settlement-api/internal/config"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/pkg/utils"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Identity entities
		&entity.User{},
		&entity.Organization{},
		&entity.OrganizationMembership{},

		// Ledger fact entities
		&entity.Order{},
		&entity.Appointment{},
		&entity.PaymentRecord{},

		// Settlement entities
		&entity.Settlement{},
		&entity.CashDrawerRecord{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the initial owner user and organization when
// configured via environment variables. Safe to run on every startup.
func SeedDefaultData(db *gorm.DB) error {
	ownerEmail := viper.GetString("SEED_OWNER_EMAIL")
	ownerPassword := viper.GetString("SEED_OWNER_PASSWORD")
	ownerName := viper.GetString("SEED_OWNER_NAME")
	orgName := viper.GetString("SEED_ORGANIZATION_NAME")

	if ownerEmail == "" || ownerPassword == "" || orgName == "" {
		return nil
	}

	log.Println("Seeding default data...")

	var existing entity.User
	if err := db.Where("email = ?", ownerEmail).First(&existing).Error; err == nil {
		log.Printf("Owner user already exists: %s", ownerEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	if ownerName == "" {
		ownerName = "Owner"
	}

	owner := entity.User{
		Name:     ownerName,
		Email:    ownerEmail,
		Password: string(hashedPassword),
		Role:     "owner",
	}
	if err := db.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to create owner user: %w", err)
	}

	org := entity.Organization{
		Name:     orgName,
		Slug:     utils.Slugify(orgName),
		Currency: viper.GetString("SEED_ORGANIZATION_CURRENCY"),
		Timezone: viper.GetString("SEED_ORGANIZATION_TIMEZONE"),
		OwnerID:  owner.ID,
	}
	if err := db.Create(&org).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	membership := entity.OrganizationMembership{
		OrganizationID: org.ID,
		UserID:         owner.ID,
		Role:           "owner",
	}
	if err := db.Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	log.Printf("Seeded organization %q with owner %s", org.Name, owner.Email)
	return nil
}
