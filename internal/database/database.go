package database

import (
	"fmt"

	"veilon-dashboard-go/internal/config"
	"veilon-dashboard-go/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase creates a new database connection and performs auto-migration.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema and seeds the plan catalog from
// config. Migration is additive; member data is never dropped.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Coupon{},
		&models.Order{},
		&models.Account{},
		&models.Trade{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Populate the 'plans' table from the config
	for _, p := range cfg.Plans {
		plan := models.Plan{
			Name:        p.Name,
			Code:        p.Code,
			AccountSize: p.AccountSize,
			Price:       p.Price,
			IsActive:    true,
			StripeLink:  p.StripeLink,
		}
		if err := db.FirstOrCreate(&plan, models.Plan{Code: p.Code}).Error; err != nil {
			return fmt.Errorf("failed to seed plan '%s': %w", p.Code, err)
		}
	}

	return nil
}
