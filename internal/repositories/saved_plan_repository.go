package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "voyager/internal/models/db_models"
)

type SavedPlanRepository interface {
	Create(ctx context.Context, plan *dbm.SavedPlan) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.SavedPlan, error)
	FindForUser(ctx context.Context, userID, id uuid.UUID) (*dbm.SavedPlan, error)
}

type savedPlanRepository struct {
	db *gorm.DB
}

func NewSavedPlanRepository(db *gorm.DB) SavedPlanRepository {
	return &savedPlanRepository{db: db}
}

func (r *savedPlanRepository) Create(ctx context.Context, plan *dbm.SavedPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *savedPlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.SavedPlan, error) {
	var plans []dbm.SavedPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *savedPlanRepository) FindForUser(ctx context.Context, userID, id uuid.UUID) (*dbm.SavedPlan, error) {
	var plan dbm.SavedPlan
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}
