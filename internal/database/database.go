package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/achariya/ambassador-backend/internal/config"
	"github.com/achariya/ambassador-backend/internal/database/migrations"
	"github.com/achariya/ambassador-backend/internal/models"
	"github.com/achariya/ambassador-backend/internal/queue"
)

// InitDB initializes the database connection with configuration
func InitDB(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dbConfig.URL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdle)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Migrate runs schema migration followed by versioned seed migrations
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// Core entities
		&models.User{},
		&models.Campus{},
		&models.AcademicYear{},
		&models.ReferralLead{},
		&models.Student{},

		// Benefit configuration
		&models.SlabEntry{},
		&models.GlobalBenefitConfig{},
		&models.GradeFee{},

		// Finance ledger
		&models.Settlement{},

		// Background jobs
		&queue.Job{},
	); err != nil {
		return err
	}

	return migrations.RunSeeds(db)
}
