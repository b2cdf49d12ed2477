package models

import "time"

type SubjectKind string

const (
	SubjectVenue  SubjectKind = "venue"
	SubjectArtist SubjectKind = "artist"
	SubjectShow   SubjectKind = "show"
)

// Activity is one entry of the listing feed, projected from domain events.
type Activity struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	RoutingKey  string      `gorm:"size:64;not null;uniqueIndex:idx_activity_dedup,priority:1" json:"routing_key"`
	SubjectKind SubjectKind `gorm:"size:16;not null" json:"subject_kind"`
	SubjectID   uint        `gorm:"not null;uniqueIndex:idx_activity_dedup,priority:2" json:"subject_id"`
	Summary     string      `gorm:"type:text;not null" json:"summary"`
	OccurredAt  time.Time   `gorm:"not null;uniqueIndex:idx_activity_dedup,priority:3" json:"occurred_at"`
}

func (Activity) TableName() string { return "activity" }
