package repository

import (
	"context"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RouteRepository interface {
	FindAll(ctx context.Context) ([]models.RouteStop, error)
	FindByTrain(ctx context.Context, tx *gorm.DB, trainID uint) ([]models.RouteStop, error)
	ReplaceForTrain(ctx context.Context, tx *gorm.DB, trainID uint, stops []models.RouteStop) error
}

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) FindAll(ctx context.Context) ([]models.RouteStop, error) {
	var stops []models.RouteStop
	if err := r.db.WithContext(ctx).Order("train_id ASC, sequence ASC").Find(&stops).Error; err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *routeRepository) FindByTrain(ctx context.Context, tx *gorm.DB, trainID uint) ([]models.RouteStop, error) {
	var stops []models.RouteStop
	if err := tx.WithContext(ctx).
		Where("train_id = ?", trainID).
		Order("sequence ASC").
		Find(&stops).Error; err != nil {
		return nil, err
	}
	return stops, nil
}

// ReplaceForTrain swaps the train's whole stop list inside tx.
func (r *routeRepository) ReplaceForTrain(ctx context.Context, tx *gorm.DB, trainID uint, stops []models.RouteStop) error {
	if err := tx.WithContext(ctx).Where("train_id = ?", trainID).Delete(&models.RouteStop{}).Error; err != nil {
		return err
	}
	if len(stops) == 0 {
		return nil
	}
	for i := range stops {
		stops[i].ID = 0
		stops[i].TrainID = trainID
	}
	return tx.WithContext(ctx).Omit(clause.Associations).Create(&stops).Error
}
