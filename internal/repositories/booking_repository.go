package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "voyager/internal/models/db_models"
)

type BookingRepository interface {
	// CreateWithDocument stores the trip document and the booking that points at it
	// in one transaction.
	CreateWithDocument(ctx context.Context, doc *dbm.TripDocument, booking *dbm.Booking) error
	FindForUser(ctx context.Context, userID, id uuid.UUID) (*dbm.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateWithDocument(ctx context.Context, doc *dbm.TripDocument, booking *dbm.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		booking.TripDocumentID = doc.ID
		return tx.Omit("TripDocument", "SavedPlan").Create(booking).Error
	})
}

func (r *bookingRepository) FindForUser(ctx context.Context, userID, id uuid.UUID) (*dbm.Booking, error) {
	var booking dbm.Booking
	err := r.db.WithContext(ctx).
		Preload("TripDocument").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.Booking, error) {
	var bookings []dbm.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
