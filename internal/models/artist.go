package models

import "time"

const DefaultArtistSeekingDescription = "seeking a venue to amaze our audience"

type Artist struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	City               string    `gorm:"size:120" json:"city"`
	State              string    `gorm:"size:120" json:"state"`
	Phone              string    `gorm:"size:120" json:"phone"`
	Genres             string    `gorm:"size:120" json:"genres"`
	ImageLink          string    `gorm:"size:500" json:"image_link"`
	FacebookLink       string    `gorm:"size:120" json:"facebook_link"`
	Website            string    `gorm:"size:120" json:"website"`
	SeekingVenue       bool      `gorm:"not null" json:"seeking_venue"`
	SeekingDescription string    `gorm:"type:text" json:"seeking_description"`
	UpcomingShowsCount int       `gorm:"not null" json:"upcoming_shows_count"`
	PastShowsCount     int       `gorm:"not null" json:"past_shows_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Shows []Show `gorm:"foreignKey:ArtistID" json:"shows,omitempty"`
}

func (Artist) TableName() string { return "artist" }
