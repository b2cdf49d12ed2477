package models

import "time"

// Show pairs one venue with one artist. Upcoming is fixed when the row is
// inserted and decides which list the show lands in on detail pages,
// independent of StartTime.
type Show struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	ArtistID  uint      `gorm:"not null;index" json:"artist_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	Upcoming  bool      `gorm:"not null" json:"upcoming"`
	CreatedAt time.Time `json:"created_at"`

	Venue  *Venue  `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Artist *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
}

func (Show) TableName() string { return "show" }
