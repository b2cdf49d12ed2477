package dto

import (
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
)

// DomainEvent is the message body published for every committed mutation.
type DomainEvent struct {
	Subject    models.SubjectKind `json:"subject"`
	Action     string             `json:"action"`
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// RoutingKey is "<subject>.<action>", e.g. "venue.created".
func (e DomainEvent) RoutingKey() string {
	return string(e.Subject) + "." + e.Action
}
