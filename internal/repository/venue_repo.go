package repository

import (
	"context"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository interface {
	Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	Save(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
	IncrementShowCount(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error)
	FindWithShows(ctx context.Context, id uint) (*models.Venue, error)
	FindAll(ctx context.Context) ([]models.Venue, error)
	SearchByName(ctx context.Context, term string) ([]models.Venue, error)
	FindRecent(ctx context.Context, limit int) ([]models.Venue, error)
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *venueRepository) Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(venue).Error
}

// Save writes every column of venue, zero values included.
func (r *venueRepository) Save(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(venue).Error
}

// DeleteByID reports how many rows went away; zero is not an error.
func (r *venueRepository) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	res := tx.WithContext(ctx).Where("id = ?", id).Delete(&models.Venue{})
	return res.RowsAffected, res.Error
}

func (r *venueRepository) IncrementShowCount(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
	column := "past_shows_count"
	if upcoming {
		column = "upcoming_shows_count"
	}
	return tx.WithContext(ctx).
		Model(&models.Venue{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

// FindByID reads through tx when given, otherwise through the repository's handle.
func (r *venueRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := r.conn(tx).WithContext(ctx).First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindWithShows loads the venue with its shows and each show's artist.
func (r *venueRepository) FindWithShows(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC, id ASC")
		}).
		Preload("Shows.Artist").
		First(&venue, id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.WithContext(ctx).Order("city ASC, state ASC, id ASC").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) SearchByName(ctx context.Context, term string) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", containsPattern(term)).
		Order("id ASC").
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) FindRecent(ctx context.Context, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}
