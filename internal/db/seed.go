package db

import (
	"errors"

	"github.com/ibumus/warung-backend/internal/app/model"
	appLogger "github.com/ibumus/warung-backend/pkg/logger"
	"github.com/ibumus/warung-backend/pkg/util"
	"gorm.io/gorm"
)

// Seed creates the bootstrap admin account if no admin exists yet. The
// password must be changed after the first login.
func Seed(db *gorm.DB) error {
	var admin model.User
	err := db.Where("role = ?", model.RoleAdmin).First(&admin).Error
	if err == nil {
		appLogger.Debug("Admin account already exists, skipping seed", map[string]interface{}{
			"user_id": admin.ID,
		})
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword("ibumus-admin-2024")
	if err != nil {
		return err
	}

	bootstrap := &model.User{
		Email:        "admin@warungibumus.id",
		PasswordHash: hash,
		FullName:     "Admin Warung IbuMus",
		Role:         model.RoleAdmin,
	}
	if err := db.Create(bootstrap).Error; err != nil {
		return err
	}

	appLogger.Info("Bootstrap admin account created", map[string]interface{}{
		"email": bootstrap.Email,
	})
	return nil
}
