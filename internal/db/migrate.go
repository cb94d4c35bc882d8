package db

import (
	"fmt"

	"github.com/ibumus/warung-backend/internal/app/model"
	appLogger "github.com/ibumus/warung-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs auto migration for all models
func Migrate(db *gorm.DB) error {
	appLogger.Info("Running database migrations", nil)

	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.MenuItem{},
		&model.Banner{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	appLogger.Info("Database migrations completed successfully", nil)
	return nil
}
