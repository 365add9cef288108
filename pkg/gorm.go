package pkg

import (
	"fmt"

	"github.com/campus-hq/portal-service/internal/config"
	"github.com/campus-hq/portal-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every portal collection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Faculty{},
		&models.Department{},
		&models.Level{},
		&models.Course{},
		&models.Student{},
		&models.Admin{},
		&models.Question{},
		&models.Exam{},
		&models.Result{},
		&models.Note{},
		&models.OTP{},
		&models.PushSubscription{},
		&models.PushNotification{},
		&models.AdSettings{},
	)
}
