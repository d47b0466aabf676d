package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes
const (
	OutcomeSucceeded = "succeeded"
	OutcomeEmpty     = "empty"
	OutcomeFailed    = "failed"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyager_itinerary_generations_total",
		Help: "Itinerary generation requests by outcome",
	}, []string{"outcome"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voyager_itinerary_generation_duration_seconds",
		Help:    "Time spent waiting on the itinerary provider",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
	})

	PickPlansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyager_pick_plans_total",
		Help: "Plan-with-picks requests by outcome",
	}, []string{"outcome"})

	QuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voyager_quotes_total",
		Help: "Quotes derived",
	})

	BookingsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voyager_bookings_finalized_total",
		Help: "Bookings persisted",
	})

	BookingFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voyager_booking_failures_total",
		Help: "Booking finalizations that failed",
	})

	InviteCodeCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voyager_invite_code_collisions_total",
		Help: "Invite code draws rejected by the unique index",
	})

	EventPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voyager_event_publish_errors_total",
		Help: "Domain events that could not be published",
	})
)
