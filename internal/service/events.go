package service

import (
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/metrics"
	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// publish runs after commit. A broker failure never undoes the write, it is
// only logged and counted.
func publish(pub EventPublisher, subject models.SubjectKind, action string, id uint, name string) {
	if pub == nil {
		return
	}
	ev := dto.DomainEvent{
		Subject:    subject,
		Action:     action,
		ID:         id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
	err := pub.Publish(ev.RoutingKey(), ev)
	metrics.CounterEventsPublished.WithLabelValues(ev.RoutingKey(), metrics.Outcome(err)).Inc()
	if err != nil {
		log.Warn().Err(err).Str("routing_key", ev.RoutingKey()).Uint("id", id).Msg("publish domain event")
	}
}
