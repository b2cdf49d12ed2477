package repository

import (
	"context"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShowRepository interface {
	Create(ctx context.Context, tx *gorm.DB, show *models.Show) error
	FindAll(ctx context.Context) ([]models.Show, error)
}

type showRepository struct {
	db *gorm.DB
}

func NewShowRepository(db *gorm.DB) ShowRepository {
	return &showRepository{db: db}
}

// Create inserts the show only; the venue and artist must already exist.
func (r *showRepository) Create(ctx context.Context, tx *gorm.DB, show *models.Show) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(show).Error
}

func (r *showRepository) FindAll(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Artist").
		Order("start_time ASC, id ASC").
		Find(&shows).Error
	if err != nil {
		return nil, err
	}
	return shows, nil
}
