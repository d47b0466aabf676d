package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "voyager/internal/models/db_models"
)

type SharedTripRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the invite code is taken.
	Create(ctx context.Context, trip *dbm.SharedTrip) error
	FindByCode(ctx context.Context, code string) (*dbm.SharedTrip, error)
}

type sharedTripRepository struct {
	db *gorm.DB
}

func NewSharedTripRepository(db *gorm.DB) SharedTripRepository {
	return &sharedTripRepository{db: db}
}

func (r *sharedTripRepository) Create(ctx context.Context, trip *dbm.SharedTrip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *sharedTripRepository) FindByCode(ctx context.Context, code string) (*dbm.SharedTrip, error) {
	var trip dbm.SharedTrip
	err := r.db.WithContext(ctx).First(&trip, "invite_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}
