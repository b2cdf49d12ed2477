package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	MetricMutations       = "mutations_total"
	MetricEventsPublished = "events_published_total"
	MetricEventsConsumed  = "events_consumed_total"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// CounterMutations counts committed and rolled back writes per entity and operation.
var CounterMutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "fyyur",
		Name:      MetricMutations,
		Help:      "Venue, artist and show writes by outcome.",
	},
	[]string{
		"entity",
		"op",
		"outcome",
	},
)

var CounterEventsPublished = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "fyyur",
		Name:      MetricEventsPublished,
		Help:      "Domain events handed to the broker.",
	},
	[]string{
		"routing_key",
		"outcome",
	},
)

var CounterEventsConsumed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "fyyur",
		Name:      MetricEventsConsumed,
		Help:      "Domain events projected into the activity feed.",
	},
	[]string{
		"outcome",
	},
)

func init() {
	prometheus.MustRegister(CounterMutations)
	prometheus.MustRegister(CounterEventsPublished)
	prometheus.MustRegister(CounterEventsConsumed)
}

func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

func RecordMutation(entity, op string, err error) {
	CounterMutations.WithLabelValues(entity, op, Outcome(err)).Inc()
}
