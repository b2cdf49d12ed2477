package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type counterBump struct {
	id       uint
	upcoming bool
}

func newShowFixture() (*mockShowRepo, *mockVenueRepo, *mockArtistRepo, *[]counterBump, *[]counterBump) {
	venueBumps := &[]counterBump{}
	artistBumps := &[]counterBump{}

	shows := &mockShowRepo{
		createFn: func(ctx context.Context, tx *gorm.DB, show *models.Show) error {
			show.ID = 11
			return nil
		},
	}
	venues := &mockVenueRepo{
		incrementFn: func(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
			*venueBumps = append(*venueBumps, counterBump{id, upcoming})
			return nil
		},
	}
	artists := &mockArtistRepo{
		incrementFn: func(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
			*artistBumps = append(*artistBumps, counterBump{id, upcoming})
			return nil
		},
	}
	return shows, venues, artists, venueBumps, artistBumps
}

func TestCreateShow_BumpsBothCounters(t *testing.T) {
	shows, venues, artists, venueBumps, artistBumps := newShowFixture()
	tx := &passTransactor{}
	pub := &recordingPublisher{}

	svc := NewShowService(shows, venues, artists, tx, pub)
	show, err := dto.ShowForm{ArtistID: 4, VenueID: 1, StartTime: "2023-01-01T20:00:00"}.NewShow()
	require.NoError(t, err)

	err = svc.CreateShow(context.Background(), show)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []counterBump{{1, true}}, *venueBumps)
	assert.Equal(t, []counterBump{{4, true}}, *artistBumps)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "show.created", pub.events[0].routingKey)
}

func TestCreateShow_PastShow(t *testing.T) {
	shows, venues, artists, venueBumps, artistBumps := newShowFixture()

	svc := NewShowService(shows, venues, artists, &passTransactor{}, nil)
	err := svc.CreateShow(context.Background(), &models.Show{ArtistID: 4, VenueID: 1, StartTime: time.Now(), Upcoming: false})

	require.NoError(t, err)
	assert.Equal(t, []counterBump{{1, false}}, *venueBumps)
	assert.Equal(t, []counterBump{{4, false}}, *artistBumps)
}

func TestCreateShow_InsertFailureSkipsCounters(t *testing.T) {
	shows, venues, artists, venueBumps, artistBumps := newShowFixture()
	shows.createFn = func(ctx context.Context, tx *gorm.DB, show *models.Show) error {
		return errors.New(`insert or update on table "show" violates foreign key constraint`)
	}
	pub := &recordingPublisher{}

	svc := NewShowService(shows, venues, artists, &passTransactor{}, pub)
	err := svc.CreateShow(context.Background(), &models.Show{ArtistID: 4, VenueID: 999, Upcoming: true})

	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "foreign key")
	assert.Empty(t, *venueBumps)
	assert.Empty(t, *artistBumps)
	assert.Empty(t, pub.events)
}

func TestCreateShow_CounterFailure(t *testing.T) {
	shows, venues, artists, _, _ := newShowFixture()
	artists.incrementFn = func(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
		return errors.New("deadlock detected")
	}

	svc := NewShowService(shows, venues, artists, &passTransactor{}, nil)
	err := svc.CreateShow(context.Background(), &models.Show{ArtistID: 4, VenueID: 1, Upcoming: true})

	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "artist counter")
}

func TestListShows(t *testing.T) {
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	shows := &mockShowRepo{
		findAllFn: func(ctx context.Context) ([]models.Show, error) {
			return []models.Show{{
				VenueID:   1,
				ArtistID:  4,
				StartTime: start,
				Venue:     &models.Venue{ID: 1, Name: "The Musical Hop"},
				Artist:    &models.Artist{ID: 4, Name: "Guns N Petals", ImageLink: "https://img/gnp.jpg"},
			}}, nil
		},
	}

	svc := NewShowService(shows, &mockVenueRepo{}, &mockArtistRepo{}, &passTransactor{}, nil)
	listing, err := svc.ListShows(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []dto.ShowListing{{
		VenueID:         1,
		VenueName:       "The Musical Hop",
		ArtistID:        4,
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://img/gnp.jpg",
		StartTime:       start,
	}}, listing)
}

func TestFormOptions(t *testing.T) {
	venues := &mockVenueRepo{
		findAllFn: func(ctx context.Context) ([]models.Venue, error) {
			return []models.Venue{{ID: 1, Name: "The Musical Hop"}}, nil
		},
	}
	artists := &mockArtistRepo{
		findAllFn: func(ctx context.Context) ([]models.Artist, error) {
			return []models.Artist{{ID: 4, Name: "Guns N Petals"}}, nil
		},
	}

	svc := NewShowService(&mockShowRepo{}, venues, artists, &passTransactor{}, nil)
	opts, err := svc.FormOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []dto.Summary{{ID: 4, Name: "Guns N Petals"}}, opts.Artists)
	assert.Equal(t, []dto.Summary{{ID: 1, Name: "The Musical Hop"}}, opts.Venues)
}
