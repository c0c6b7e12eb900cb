// Package metrics exposes Prometheus collectors for the reservation service.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"train-reservations/models"
)

const namespace = "railways"

// Outcome label values
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeNoSeat      = "no_seat"
	OutcomeUnavailable = "unavailable"
	OutcomeDuplicate   = "duplicate"
	OutcomeError       = "error"
)

// Metrics groups the collectors updated by the services
type Metrics struct {
	Bookings      *prometheus.CounterVec
	Cancellations *prometheus.CounterVec
	TrainChanges  *prometheus.CounterVec
	Duration      *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from g
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Bookings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Seat booking attempts by requested category and outcome.",
		}, []string{"category", "outcome"}),
		Cancellations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Seat cancellations by outcome.",
		}, []string{"outcome"}),
		TrainChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "train_changes_total",
			Help:      "Train additions and deletions by outcome.",
		}, []string{"operation", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of reservation operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		gatherer: g,
	}
}

// Observe records how long operation took since start
func (m *Metrics) Observe(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// OutcomeOf maps an operation result to its outcome label
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, models.ErrDuplicateTrain):
		return OutcomeDuplicate
	case errors.Is(err, models.ErrNoSeatAvailable):
		return OutcomeNoSeat
	case errors.Is(err, models.ErrSeatUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, models.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
