package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
)

type SearchRequest struct {
	SearchTerm string `form:"search_term"`
}

// VenueForm is the venue create/edit form. SeekingTalent carries the raw
// checkbox value; browsers omit an unchecked box, so absent means false.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=255"`
	City               string   `form:"city" validate:"max=120"`
	State              string   `form:"state" validate:"max=120"`
	Address            string   `form:"address" validate:"max=120"`
	Phone              string   `form:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `form:"website" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" validate:"genres"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

// NewVenueForm is the blank create form. The seeking box starts checked to
// match the column default.
func NewVenueForm() VenueForm {
	return VenueForm{SeekingTalent: "y"}
}

// NewVenue builds a row for insertion. An empty seeking description falls
// back to the column default.
func (f VenueForm) NewVenue() *models.Venue {
	seeking, _ := parseCheckbox(f.SeekingTalent)
	desc := f.SeekingDescription
	if desc == "" {
		desc = models.DefaultVenueSeekingDescription
	}

	return &models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             models.JoinGenres(f.Genres),
		SeekingTalent:      seeking,
		SeekingDescription: desc,
	}
}

// ApplyTo overwrites every editable field of v. Fields missing from the
// submitted form end up empty; nothing is merged.
func (f VenueForm) ApplyTo(v *models.Venue) {
	seeking, _ := parseCheckbox(f.SeekingTalent)

	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.Genres = models.JoinGenres(f.Genres)
	v.SeekingTalent = seeking
	v.SeekingDescription = f.SeekingDescription
}

func VenueFormFrom(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		Genres:             models.SplitGenres(v.Genres),
		SeekingTalent:      formatCheckbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=255"`
	City               string   `form:"city" validate:"max=120"`
	State              string   `form:"state" validate:"max=120"`
	Phone              string   `form:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `form:"website" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" validate:"genres"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

func NewArtistForm() ArtistForm {
	return ArtistForm{SeekingVenue: "y"}
}

func (f ArtistForm) NewArtist() *models.Artist {
	seeking, _ := parseCheckbox(f.SeekingVenue)
	desc := f.SeekingDescription
	if desc == "" {
		desc = models.DefaultArtistSeekingDescription
	}

	return &models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             models.JoinGenres(f.Genres),
		SeekingVenue:       seeking,
		SeekingDescription: desc,
	}
}

// ApplyTo has the same overwrite semantics as VenueForm.ApplyTo.
func (f ArtistForm) ApplyTo(a *models.Artist) {
	seeking, _ := parseCheckbox(f.SeekingVenue)

	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.Genres = models.JoinGenres(f.Genres)
	a.SeekingVenue = seeking
	a.SeekingDescription = f.SeekingDescription
}

func ArtistFormFrom(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		Genres:             models.SplitGenres(a.Genres),
		SeekingVenue:       formatCheckbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

type ShowForm struct {
	ArtistID  uint   `form:"artist_id" validate:"required,gt=0"`
	VenueID   uint   `form:"venue_id" validate:"required,gt=0"`
	StartTime string `form:"start_time" validate:"required,showtime"`
	Upcoming  string `form:"upcoming"`
}

// NewShow builds a show row. The upcoming flag defaults to true and is not
// derived from the start time.
func (f ShowForm) NewShow() (*models.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	upcoming, ok := parseCheckbox(f.Upcoming)
	if !ok {
		upcoming = true
	}

	return &models.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: start,
		Upcoming:  upcoming,
	}, nil
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseStartTime accepts RFC3339 and the zone-less layouts produced by
// datetime-local inputs. Zone-less values are taken as UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start_time %q", s)
}

// parseCheckbox reports the checkbox value and whether the field was sent at all.
func parseCheckbox(raw string) (value bool, provided bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "y", "yes", "on":
		return true, true
	case "n", "no", "off":
		return false, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true
	}
	return b, true
}

func formatCheckbox(b bool) string {
	if b {
		return "y"
	}
	return ""
}
