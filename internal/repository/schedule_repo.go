package repository

import (
	"context"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository interface {
	FindForDate(ctx context.Context, date time.Time) ([]models.ScheduleOverride, error)
	FindForTrainAndDate(ctx context.Context, tx *gorm.DB, trainID uint, date time.Time) ([]models.ScheduleOverride, error)
	Upsert(ctx context.Context, override *models.ScheduleOverride) error
	DeleteBefore(ctx context.Context, date time.Time) (int64, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) FindForDate(ctx context.Context, date time.Time) ([]models.ScheduleOverride, error) {
	var overrides []models.ScheduleOverride
	if err := r.db.WithContext(ctx).
		Where("journey_date = ?", date.Format("2006-01-02")).
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *scheduleRepository) FindForTrainAndDate(ctx context.Context, tx *gorm.DB, trainID uint, date time.Time) ([]models.ScheduleOverride, error) {
	var overrides []models.ScheduleOverride
	if err := tx.WithContext(ctx).
		Where("train_id = ? AND journey_date = ?", trainID, date.Format("2006-01-02")).
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// Upsert inserts the override or replaces the existing one for the same train and date.
func (r *scheduleRepository) Upsert(ctx context.Context, override *models.ScheduleOverride) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "train_id"}, {Name: "journey_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "delay_minutes", "updated_at"}),
		}).Create(override).Error
}

// DeleteBefore purges overrides for journey dates that have passed.
func (r *scheduleRepository) DeleteBefore(ctx context.Context, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("journey_date < ?", date.Format("2006-01-02")).
		Delete(&models.ScheduleOverride{})
	return result.RowsAffected, result.Error
}
