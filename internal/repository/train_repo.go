package repository

import (
	"context"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrainRepository interface {
	Create(ctx context.Context, train *models.Train) error
	Save(ctx context.Context, tx *gorm.DB, train *models.Train) error
	FindByID(ctx context.Context, id uint) (*models.Train, error)
	FindByNumber(ctx context.Context, number string) (*models.Train, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Train, error)
	FindAll(ctx context.Context, includeArchived bool) ([]models.Train, error)
	DecrementSeat(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type trainRepository struct {
	db *gorm.DB
}

func NewTrainRepository(db *gorm.DB) TrainRepository {
	return &trainRepository{db: db}
}

func (r *trainRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *trainRepository) Create(ctx context.Context, train *models.Train) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(train).Error
}

func (r *trainRepository) Save(ctx context.Context, tx *gorm.DB, train *models.Train) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(train).Error
}

func (r *trainRepository) FindByID(ctx context.Context, id uint) (*models.Train, error) {
	var train models.Train
	if err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Preload("Stops.Station").
		First(&train, id).Error; err != nil {
		return nil, err
	}
	return &train, nil
}

func (r *trainRepository) FindByNumber(ctx context.Context, number string) (*models.Train, error) {
	var train models.Train
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&train).Error; err != nil {
		return nil, err
	}
	return &train, nil
}

// FindByIDForUpdate acquires a row-level lock on the train within the given transaction.
func (r *trainRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Train, error) {
	var train models.Train
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&train, id).Error; err != nil {
		return nil, err
	}
	return &train, nil
}

func (r *trainRepository) FindAll(ctx context.Context, includeArchived bool) ([]models.Train, error) {
	var trains []models.Train
	q := r.db.WithContext(ctx)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Order("id ASC").Find(&trains).Error; err != nil {
		return nil, err
	}
	return trains, nil
}

// DecrementSeat takes one seat and reports false when none was left.
func (r *trainRepository) DecrementSeat(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Train{}).
		Where("id = ? AND available_seats > 0", id).
		Update("available_seats", gorm.Expr("available_seats - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *trainRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Train{}, id).Error
}
