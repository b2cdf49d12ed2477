package service

import (
	"context"
	"fmt"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/repository"
)

// RecentLimit caps each list on the home page.
const RecentLimit = 10

type HomeService interface {
	Home(ctx context.Context) (*dto.HomePage, error)
}

type homeService struct {
	venues   repository.VenueRepository
	artists  repository.ArtistRepository
	activity repository.ActivityRepository
}

func NewHomeService(venues repository.VenueRepository, artists repository.ArtistRepository, activity repository.ActivityRepository) HomeService {
	return &homeService{venues: venues, artists: artists, activity: activity}
}

func (s *homeService) Home(ctx context.Context) (*dto.HomePage, error) {
	venues, err := s.venues.FindRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent venues: %w", err)
	}
	artists, err := s.artists.FindRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent artists: %w", err)
	}
	items, err := s.activity.FindRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	return &dto.HomePage{
		RecentVenues:  dto.ToVenueSummaries(venues),
		RecentArtists: dto.ToArtistSummaries(artists),
		Activity:      dto.ToActivityEntries(items),
	}, nil
}
