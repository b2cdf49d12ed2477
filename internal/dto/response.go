package dto

import (
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
)

type VenueSummary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// Summary is the id/name pair used by listings.
type Summary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SearchHit struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type SearchResult struct {
	Count int         `json:"count"`
	Data  []SearchHit `json:"data"`
}

// VenueShow is a show as seen from a venue page.
type VenueShow struct {
	ArtistID        uint      `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show as seen from an artist page.
type ArtistShow struct {
	VenueID        uint      `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

type VenueDetail struct {
	ID                 uint        `json:"id"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	Address            string      `json:"address"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	Website            string      `json:"website"`
	FacebookLink       string      `json:"facebook_link"`
	ImageLink          string      `json:"image_link"`
	SeekingTalent      bool        `json:"seeking_talent"`
	SeekingDescription string      `json:"seeking_description"`
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	ID                 uint         `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	Website            string       `json:"website"`
	FacebookLink       string       `json:"facebook_link"`
	ImageLink          string       `json:"image_link"`
	SeekingVenue       bool         `json:"seeking_venue"`
	SeekingDescription string       `json:"seeking_description"`
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

type ShowListing struct {
	VenueID         uint      `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint      `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

type ActivityEntry struct {
	RoutingKey  string             `json:"routing_key"`
	SubjectKind models.SubjectKind `json:"subject_kind"`
	SubjectID   uint               `json:"subject_id"`
	Summary     string             `json:"summary"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type HomePage struct {
	RecentVenues  []Summary       `json:"recent_venues"`
	RecentArtists []Summary       `json:"recent_artists"`
	Activity      []ActivityEntry `json:"activity"`
}

// GroupVenuesByArea partitions venues by (city, state). Groups keep the
// order in which their first venue appears.
func GroupVenuesByArea(venues []models.Venue) []Area {
	areas := make([]Area, 0)
	index := make(map[[2]string]int)

	for _, v := range venues {
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []VenueSummary{}})
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: v.UpcomingShowsCount,
		})
	}
	return areas
}

func ToArtistSummaries(artists []models.Artist) []Summary {
	resp := make([]Summary, len(artists))
	for i, a := range artists {
		resp[i] = Summary{ID: a.ID, Name: a.Name}
	}
	return resp
}

func ToVenueSummaries(venues []models.Venue) []Summary {
	resp := make([]Summary, len(venues))
	for i, v := range venues {
		resp[i] = Summary{ID: v.ID, Name: v.Name}
	}
	return resp
}

// ToVenueSearchResult reports the stored upcoming counter for each hit.
func ToVenueSearchResult(venues []models.Venue) SearchResult {
	hits := make([]SearchHit, len(venues))
	for i, v := range venues {
		hits[i] = SearchHit{ID: v.ID, Name: v.Name, NumUpcomingShows: v.UpcomingShowsCount}
	}
	return SearchResult{Count: len(hits), Data: hits}
}

func ToArtistSearchResult(artists []models.Artist) SearchResult {
	hits := make([]SearchHit, len(artists))
	for i, a := range artists {
		hits[i] = SearchHit{ID: a.ID, Name: a.Name, NumUpcomingShows: a.UpcomingShowsCount}
	}
	return SearchResult{Count: len(hits), Data: hits}
}

// ToVenueDetail expects v.Shows to be loaded with each show's Artist.
// Shows are split on their stored Upcoming flag.
func ToVenueDetail(v *models.Venue) VenueDetail {
	past := []VenueShow{}
	upcoming := []VenueShow{}

	for _, s := range v.Shows {
		entry := VenueShow{ArtistID: s.ArtistID, StartTime: s.StartTime}
		if s.Artist != nil {
			entry.ArtistName = s.Artist.Name
			entry.ArtistImageLink = s.Artist.ImageLink
		}
		if s.Upcoming {
			upcoming = append(upcoming, entry)
		} else {
			past = append(past, entry)
		}
	}

	return VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             models.SplitGenres(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

// ToArtistDetail expects a.Shows to be loaded with each show's Venue.
func ToArtistDetail(a *models.Artist) ArtistDetail {
	past := []ArtistShow{}
	upcoming := []ArtistShow{}

	for _, s := range a.Shows {
		entry := ArtistShow{VenueID: s.VenueID, StartTime: s.StartTime}
		if s.Venue != nil {
			entry.VenueName = s.Venue.Name
			entry.VenueImageLink = s.Venue.ImageLink
		}
		if s.Upcoming {
			upcoming = append(upcoming, entry)
		} else {
			past = append(past, entry)
		}
	}

	return ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             models.SplitGenres(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

func ToShowListings(shows []models.Show) []ShowListing {
	resp := make([]ShowListing, len(shows))
	for i, s := range shows {
		entry := ShowListing{VenueID: s.VenueID, ArtistID: s.ArtistID, StartTime: s.StartTime}
		if s.Venue != nil {
			entry.VenueName = s.Venue.Name
		}
		if s.Artist != nil {
			entry.ArtistName = s.Artist.Name
			entry.ArtistImageLink = s.Artist.ImageLink
		}
		resp[i] = entry
	}
	return resp
}

func ToActivityEntries(items []models.Activity) []ActivityEntry {
	resp := make([]ActivityEntry, len(items))
	for i, a := range items {
		resp[i] = ActivityEntry{
			RoutingKey:  a.RoutingKey,
			SubjectKind: a.SubjectKind,
			SubjectID:   a.SubjectID,
			Summary:     a.Summary,
			OccurredAt:  a.OccurredAt,
		}
	}
	return resp
}

// ShowFormOptions feeds the artist and venue pickers on the new show form.
type ShowFormOptions struct {
	Artists []Summary `json:"artists"`
	Venues  []Summary `json:"venues"`
}
