package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-cravings-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database named by DATABASE_URL and migrates the
// schema. A postgres:// URL uses the postgres driver; anything else
// is treated as a sqlite path (":memory:" included, which tests use).
func InitDB(databaseURL string) error {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return Migrate()
}

// IsDuplicateKey reports whether err came from a unique-constraint
// violation. TranslateError normalizes most drivers to
// gorm.ErrDuplicatedKey; the string checks cover the rest.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}

// Migrate runs AutoMigrate for the canonical schema. This is the one
// schema definition; older field variants are handled by seed/import
// scripts, not by the models.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.DeviceToken{},
		&models.College{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
}
