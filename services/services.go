// Package services holds the train registry and the reservation service.
// Both serialize writes per train through a shared lock table and run each
// operation as a single store transaction.
package services

import (
	"github.com/rs/zerolog"

	"train-reservations/database"
	"train-reservations/metrics"
	"train-reservations/seating"
)

// Options configures the services
type Options struct {
	// Capacity is the number of seats created for every new train.
	// Existing seat maps keep the size they were created with.
	Capacity int
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

// Services bundles the registry and the reservation service
type Services struct {
	Trains       *TrainRegistry
	Reservations *ReservationService
}

// New wires both services to store with one shared lock table
func New(store database.Transactor, opts Options) *Services {
	if opts.Capacity < 1 {
		opts.Capacity = seating.DefaultCapacity
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	locks := newTrainLocks()
	return &Services{
		Trains: &TrainRegistry{
			store:    store,
			locks:    locks,
			capacity: opts.Capacity,
			metrics:  opts.Metrics,
			log:      opts.Logger.With().Str("component", "train_registry").Logger(),
		},
		Reservations: &ReservationService{
			store:   store,
			locks:   locks,
			metrics: opts.Metrics,
			log:     opts.Logger.With().Str("component", "reservations").Logger(),
		},
	}
}
