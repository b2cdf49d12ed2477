package service

import (
	"context"
	"fmt"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/metrics"
	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/AmiraAbdelhalim/fyyur/internal/repository"
	"gorm.io/gorm"
)

type ShowService interface {
	ListShows(ctx context.Context) ([]dto.ShowListing, error)
	FormOptions(ctx context.Context) (*dto.ShowFormOptions, error)
	CreateShow(ctx context.Context, show *models.Show) error
}

type showService struct {
	shows     repository.ShowRepository
	venues    repository.VenueRepository
	artists   repository.ArtistRepository
	tx        repository.Transactor
	publisher EventPublisher
}

func NewShowService(
	shows repository.ShowRepository,
	venues repository.VenueRepository,
	artists repository.ArtistRepository,
	tx repository.Transactor,
	publisher EventPublisher,
) ShowService {
	return &showService{
		shows:     shows,
		venues:    venues,
		artists:   artists,
		tx:        tx,
		publisher: publisher,
	}
}

func (s *showService) ListShows(ctx context.Context) ([]dto.ShowListing, error) {
	shows, err := s.shows.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return dto.ToShowListings(shows), nil
}

func (s *showService) FormOptions(ctx context.Context) (*dto.ShowFormOptions, error) {
	artists, err := s.artists.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	venues, err := s.venues.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return &dto.ShowFormOptions{
		Artists: dto.ToArtistSummaries(artists),
		Venues:  dto.ToVenueSummaries(venues),
	}, nil
}

// CreateShow inserts the show and bumps the matching counter on both the
// venue and the artist. Either all three writes commit or none do.
func (s *showService) CreateShow(ctx context.Context, show *models.Show) error {
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.shows.Create(ctx, tx, show); err != nil {
			return err
		}
		if err := s.venues.IncrementShowCount(ctx, tx, show.VenueID, show.Upcoming); err != nil {
			return fmt.Errorf("venue counter: %w", err)
		}
		if err := s.artists.IncrementShowCount(ctx, tx, show.ArtistID, show.Upcoming); err != nil {
			return fmt.Errorf("artist counter: %w", err)
		}
		return nil
	})
	metrics.RecordMutation("show", "create", err)
	if err != nil {
		return fmt.Errorf("%w: create show for venue %d and artist %d: %w", ErrPersistence, show.VenueID, show.ArtistID, err)
	}

	publish(s.publisher, models.SubjectShow, ActionCreated, show.ID, "")
	return nil
}
