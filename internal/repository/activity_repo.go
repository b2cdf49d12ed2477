package repository

import (
	"context"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	Record(ctx context.Context, activity *models.Activity) error
	FindRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Record inserts the entry unless the same event was already stored, so
// redelivered messages are harmless.
func (r *activityRepository) Record(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "routing_key"}, {Name: "subject_id"}, {Name: "occurred_at"}},
		DoNothing: true,
	}).Create(activity).Error
}

func (r *activityRepository) FindRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	var items []models.Activity
	if err := r.db.WithContext(ctx).Order("occurred_at DESC, id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
