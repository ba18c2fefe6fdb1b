package repository

import (
	"context"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"gorm.io/gorm"
)

type StationRepository interface {
	Create(ctx context.Context, station *models.Station) error
	FindAll(ctx context.Context) ([]models.Station, error)
	FindByCode(ctx context.Context, code string) (*models.Station, error)
	CountByCodes(ctx context.Context, codes []string) (int64, error)
}

type stationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) Create(ctx context.Context, station *models.Station) error {
	return r.db.WithContext(ctx).Create(station).Error
}

func (r *stationRepository) FindAll(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

func (r *stationRepository) FindByCode(ctx context.Context, code string) (*models.Station, error) {
	var station models.Station
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&station).Error; err != nil {
		return nil, err
	}
	return &station, nil
}

func (r *stationRepository) CountByCodes(ctx context.Context, codes []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Station{}).
		Where("code IN ?", codes).
		Count(&count).Error
	return count, err
}
