package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/metrics"
	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/AmiraAbdelhalim/fyyur/internal/repository"
	"gorm.io/gorm"
)

type ArtistService interface {
	ListArtists(ctx context.Context) ([]dto.Summary, error)
	SearchArtists(ctx context.Context, term string) (dto.SearchResult, error)
	GetArtist(ctx context.Context, id uint) (*dto.ArtistDetail, error)
	GetArtistForEdit(ctx context.Context, id uint) (*models.Artist, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, id uint, apply func(*models.Artist)) (*models.Artist, error)
}

type artistService struct {
	repo      repository.ArtistRepository
	tx        repository.Transactor
	publisher EventPublisher
}

func NewArtistService(repo repository.ArtistRepository, tx repository.Transactor, publisher EventPublisher) ArtistService {
	return &artistService{repo: repo, tx: tx, publisher: publisher}
}

func (s *artistService) ListArtists(ctx context.Context) ([]dto.Summary, error) {
	artists, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return dto.ToArtistSummaries(artists), nil
}

func (s *artistService) SearchArtists(ctx context.Context, term string) (dto.SearchResult, error) {
	artists, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return dto.SearchResult{}, fmt.Errorf("search artists: %w", err)
	}
	return dto.ToArtistSearchResult(artists), nil
}

func (s *artistService) GetArtist(ctx context.Context, id uint) (*dto.ArtistDetail, error) {
	artist, err := s.repo.FindWithShows(ctx, id)
	if err != nil {
		return nil, artistLookupErr(err)
	}
	detail := dto.ToArtistDetail(artist)
	return &detail, nil
}

func (s *artistService) GetArtistForEdit(ctx context.Context, id uint) (*models.Artist, error) {
	artist, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, artistLookupErr(err)
	}
	return artist, nil
}

func (s *artistService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, artist)
	})
	metrics.RecordMutation("artist", "create", err)
	if err != nil {
		return fmt.Errorf("%w: create artist %q: %w", ErrPersistence, artist.Name, err)
	}

	publish(s.publisher, models.SubjectArtist, ActionCreated, artist.ID, artist.Name)
	return nil
}

func (s *artistService) UpdateArtist(ctx context.Context, id uint, apply func(*models.Artist)) (*models.Artist, error) {
	var result *models.Artist

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		artist, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return artistLookupErr(err)
		}
		apply(artist)
		if err := s.repo.Save(ctx, tx, artist); err != nil {
			return err
		}
		result = artist
		return nil
	})
	if errors.Is(err, ErrArtistNotFound) {
		return nil, err
	}
	metrics.RecordMutation("artist", "update", err)
	if err != nil {
		return nil, fmt.Errorf("%w: update artist %d: %w", ErrPersistence, id, err)
	}

	publish(s.publisher, models.SubjectArtist, ActionUpdated, result.ID, result.Name)
	return result, nil
}

func artistLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrArtistNotFound
	}
	return fmt.Errorf("find artist: %w", err)
}
