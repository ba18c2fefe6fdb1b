package database

import (
	"fmt"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB connects and migrates, exiting the process on failure.
func NewPostgresDB(dsn string) *gorm.DB {
	db, err := Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

// Open connects with unique violations translated to gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Station{},
		&models.Train{},
		&models.RouteStop{},
		&models.ScheduleOverride{},
		&models.Booking{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// "my bookings" lists newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC)
	`).Error; err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}

	// search only ever loads active trains
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_trains_active
		ON trains (id)
		WHERE archived = false
	`).Error; err != nil {
		return fmt.Errorf("create train index: %w", err)
	}

	return nil
}
