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

type VenueService interface {
	ListVenues(ctx context.Context) ([]dto.Area, error)
	SearchVenues(ctx context.Context, term string) (dto.SearchResult, error)
	GetVenue(ctx context.Context, id uint) (*dto.VenueDetail, error)
	GetVenueForEdit(ctx context.Context, id uint) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, id uint, apply func(*models.Venue)) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id uint) error
}

type venueService struct {
	repo      repository.VenueRepository
	tx        repository.Transactor
	publisher EventPublisher
}

// NewVenueService accepts a nil publisher, in which case no events are sent.
func NewVenueService(repo repository.VenueRepository, tx repository.Transactor, publisher EventPublisher) VenueService {
	return &venueService{repo: repo, tx: tx, publisher: publisher}
}

func (s *venueService) ListVenues(ctx context.Context) ([]dto.Area, error) {
	venues, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return dto.GroupVenuesByArea(venues), nil
}

func (s *venueService) SearchVenues(ctx context.Context, term string) (dto.SearchResult, error) {
	venues, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return dto.SearchResult{}, fmt.Errorf("search venues: %w", err)
	}
	return dto.ToVenueSearchResult(venues), nil
}

func (s *venueService) GetVenue(ctx context.Context, id uint) (*dto.VenueDetail, error) {
	venue, err := s.repo.FindWithShows(ctx, id)
	if err != nil {
		return nil, venueLookupErr(err)
	}
	detail := dto.ToVenueDetail(venue)
	return &detail, nil
}

func (s *venueService) GetVenueForEdit(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, venueLookupErr(err)
	}
	return venue, nil
}

func (s *venueService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, venue)
	})
	metrics.RecordMutation("venue", "create", err)
	if err != nil {
		return fmt.Errorf("%w: create venue %q: %w", ErrPersistence, venue.Name, err)
	}

	publish(s.publisher, models.SubjectVenue, ActionCreated, venue.ID, venue.Name)
	return nil
}

// UpdateVenue loads the row, lets apply overwrite it and saves it, all in
// one transaction.
func (s *venueService) UpdateVenue(ctx context.Context, id uint, apply func(*models.Venue)) (*models.Venue, error) {
	var result *models.Venue

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		venue, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return venueLookupErr(err)
		}
		apply(venue)
		if err := s.repo.Save(ctx, tx, venue); err != nil {
			return err
		}
		result = venue
		return nil
	})
	if errors.Is(err, ErrVenueNotFound) {
		return nil, err
	}
	metrics.RecordMutation("venue", "update", err)
	if err != nil {
		return nil, fmt.Errorf("%w: update venue %d: %w", ErrPersistence, id, err)
	}

	publish(s.publisher, models.SubjectVenue, ActionUpdated, result.ID, result.Name)
	return result, nil
}

// DeleteVenue removes the row by id. A missing row is not an error; a venue
// still referenced by shows fails on the foreign key.
func (s *venueService) DeleteVenue(ctx context.Context, id uint) error {
	var deleted int64

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		n, err := s.repo.DeleteByID(ctx, tx, id)
		deleted = n
		return err
	})
	metrics.RecordMutation("venue", "delete", err)
	if err != nil {
		return fmt.Errorf("%w: delete venue %d: %w", ErrPersistence, id, err)
	}

	if deleted > 0 {
		publish(s.publisher, models.SubjectVenue, ActionDeleted, id, "")
	}
	return nil
}

func venueLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrVenueNotFound
	}
	return fmt.Errorf("find venue: %w", err)
}
