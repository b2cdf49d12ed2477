package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/metrics"
	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/AmiraAbdelhalim/fyyur/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// ActivityConsumer projects domain events into the activity feed shown on
// the home page.
type ActivityConsumer struct {
	repo repository.ActivityRepository
	done chan struct{}

	// backoff is the pause before requeueing after a failed store. It
	// doubles per consecutive failure up to maxRetryDelay.
	backoff time.Duration
	sleep   func(time.Duration)
}

const (
	minRetryDelay = 500 * time.Millisecond
	maxRetryDelay = 30 * time.Second
)

func NewActivityConsumer(repo repository.ActivityRepository) *ActivityConsumer {
	return &ActivityConsumer{repo: repo, done: make(chan struct{}), sleep: time.Sleep}
}

// Start drains msgs on a background goroutine until the channel closes.
func (c *ActivityConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		defer close(c.done)
		for msg := range msgs {
			c.handleMessage(context.Background(), msg)
		}
		log.Info().Msg("activity consumer: channel closed, stopping")
	}()
}

// Done is closed once the delivery channel has been drained.
func (c *ActivityConsumer) Done() <-chan struct{} {
	return c.done
}

func (c *ActivityConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var ev dto.DomainEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Error().Err(err).Str("routing_key", msg.RoutingKey).Msg("activity consumer: unmarshal")
		metrics.CounterEventsConsumed.WithLabelValues(metrics.OutcomeError).Inc()
		_ = msg.Nack(false, false)
		return
	}

	activity := ToActivity(ev)
	if err := c.repo.Record(ctx, activity); err != nil {
		log.Error().Err(err).Str("routing_key", activity.RoutingKey).Uint("subject_id", ev.ID).Msg("activity consumer: record")
		metrics.CounterEventsConsumed.WithLabelValues(metrics.OutcomeError).Inc()
		c.sleep(c.nextBackoff())
		_ = msg.Nack(false, true)
		return
	}
	c.backoff = 0

	log.Debug().Str("routing_key", activity.RoutingKey).Uint("subject_id", ev.ID).Msg("activity consumer: recorded")
	metrics.CounterEventsConsumed.WithLabelValues(metrics.OutcomeOK).Inc()
	_ = msg.Ack(false)
}

func (c *ActivityConsumer) nextBackoff() time.Duration {
	switch {
	case c.backoff == 0:
		c.backoff = minRetryDelay
	case c.backoff < maxRetryDelay:
		c.backoff = min(c.backoff*2, maxRetryDelay)
	}
	return c.backoff
}

// ToActivity turns an event into a feed row.
func ToActivity(ev dto.DomainEvent) *models.Activity {
	return &models.Activity{
		RoutingKey:  ev.RoutingKey(),
		SubjectKind: ev.Subject,
		SubjectID:   ev.ID,
		Summary:     summarize(ev),
		OccurredAt:  ev.OccurredAt,
	}
}

func summarize(ev dto.DomainEvent) string {
	kind := string(ev.Subject)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}

	subject := fmt.Sprintf("%s #%d", kind, ev.ID)
	if ev.Name != "" {
		subject = kind + " " + ev.Name
	}

	switch ev.Action {
	case "created":
		return subject + " was listed"
	case "updated":
		return subject + " was updated"
	case "deleted":
		return subject + " was removed"
	default:
		return subject + " " + ev.Action
	}
}
