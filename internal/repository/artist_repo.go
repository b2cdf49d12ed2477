package repository

import (
	"context"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtistRepository interface {
	Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	Save(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	IncrementShowCount(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Artist, error)
	FindWithShows(ctx context.Context, id uint) (*models.Artist, error)
	FindAll(ctx context.Context) ([]models.Artist, error)
	SearchByName(ctx context.Context, term string) ([]models.Artist, error)
	FindRecent(ctx context.Context, limit int) ([]models.Artist, error)
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *artistRepository) Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(artist).Error
}

func (r *artistRepository) Save(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(artist).Error
}

func (r *artistRepository) IncrementShowCount(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
	column := "past_shows_count"
	if upcoming {
		column = "upcoming_shows_count"
	}
	return tx.WithContext(ctx).
		Model(&models.Artist{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

func (r *artistRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := r.conn(tx).WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

// FindWithShows loads the artist with its shows and each show's venue.
func (r *artistRepository) FindWithShows(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC, id ASC")
		}).
		Preload("Shows.Venue").
		First(&artist, id).Error
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) FindAll(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.db.WithContext(ctx).Select("id", "name").Order("id ASC").Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *artistRepository) SearchByName(ctx context.Context, term string) ([]models.Artist, error) {
	var artists []models.Artist
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", containsPattern(term)).
		Order("id ASC").
		Find(&artists).Error
	if err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *artistRepository) FindRecent(ctx context.Context, limit int) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}
