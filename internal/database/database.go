package database

import (
	"errors"

	"heartchain/config"
	"heartchain/internal/domain"
	"heartchain/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Orphanage{},
		&models.Campaign{},
		&models.Donation{},
		&models.Report{},
		&models.Transaction{},
	)
}

// SeedAdmin ensures the default platform admin from config exists. An existing
// account with the admin email is elevated rather than duplicated.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) {
	if cfg.Email == "" || cfg.Password == "" {
		logrus.Info("admin bootstrap skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return
	}
	var u models.User
	err := db.Where("email = ?", cfg.Email).First(&u).Error
	if err == nil {
		updated := false
		if u.Role != domain.RoleAdmin {
			u.Role = domain.RoleAdmin
			updated = true
		}
		if !u.IsActive {
			u.IsActive = true
			updated = true
		}
		if !u.IsVerified {
			u.IsVerified = true
			updated = true
		}
		if updated {
			if err := db.Save(&u).Error; err != nil {
				logrus.WithError(err).Warn("admin bootstrap: update failed")
			}
		}
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Warn("admin bootstrap: lookup failed")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Warn("admin bootstrap: hash failed")
		return
	}
	admin := models.User{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		FullName:     cfg.Name,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.WithError(err).Warn("admin bootstrap: create failed")
		return
	}
	logrus.WithField("email", cfg.Email).Info("admin user created")
}
