package repository

import (
	"context"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByPNR(ctx context.Context, pnr string) (*models.Booking, error)
	FindByPNRForUpdate(ctx context.Context, tx *gorm.DB, pnr string) (*models.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
	CountByTrain(ctx context.Context, tx *gorm.DB, trainID uint) (int64, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, pnr string, method models.PaymentMethod, transactionID string, paidAt time.Time) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) FindByPNR(ctx context.Context, pnr string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Train").
		Preload("Origin").
		Preload("Destination").
		Where("pnr = ?", pnr).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByPNRForUpdate locks the booking row so concurrent payments serialize.
func (r *bookingRepository) FindByPNRForUpdate(ctx context.Context, tx *gorm.DB, pnr string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pnr = ?", pnr).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByUser returns the user's bookings, newest first.
func (r *bookingRepository) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Train").
		Where("user_id = ?", userID).
		Order("created_at DESC, pnr ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountByTrain(ctx context.Context, tx *gorm.DB, trainID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("train_id = ?", trainID).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) MarkPaid(ctx context.Context, tx *gorm.DB, pnr string, method models.PaymentMethod, transactionID string, paidAt time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("pnr = ? AND payment_status = ?", pnr, models.PaymentPending).
		Updates(map[string]any{
			"payment_status": models.PaymentSuccess,
			"payment_method": method,
			"transaction_id": transactionID,
			"payment_date":   paidAt,
		}).Error
}
