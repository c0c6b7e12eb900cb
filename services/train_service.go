package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"train-reservations/database"
	"train-reservations/metrics"
	"train-reservations/models"
	"train-reservations/seating"
)

// TrainRegistry owns train records and the seat maps created with them
type TrainRegistry struct {
	store    database.Transactor
	locks    *trainLocks
	capacity int
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// AddTrain registers a train and seeds its seat map in one transaction.
// If seeding fails the train record is rolled back with it.
func (r *TrainRegistry) AddTrain(ctx context.Context, train models.Train) (err error) {
	defer r.metrics.Observe("add_train", time.Now())
	defer func() {
		r.metrics.TrainChanges.WithLabelValues("add", metrics.OutcomeOf(err)).Inc()
	}()

	unlock := r.locks.lock(train.Number)
	defer unlock()

	err = r.store.RunInTx(ctx, func(gw database.Gateway) error {
		_, err := gw.GetTrain(ctx, train.Number)
		switch {
		case err == nil:
			return fmt.Errorf("train %s: %w", train.Number, models.ErrDuplicateTrain)
		case !errors.Is(err, models.ErrNotFound):
			return err
		}

		if err := gw.InsertTrain(ctx, train); err != nil {
			return err
		}
		if err := seating.New(gw, train.Number).Initialize(ctx, r.capacity); err != nil {
			return fmt.Errorf("failed to create seat map: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logFailure(err, "Failed to add train", train.Number)
		return err
	}

	r.log.Info().
		Str("train_number", train.Number).
		Str("train_name", train.Name).
		Str("departure_date", train.DepartureDate.String()).
		Int("seats", r.capacity).
		Msg("Train added")
	return nil
}

// GetTrain retrieves a train by number
func (r *TrainRegistry) GetTrain(ctx context.Context, number string) (*models.Train, error) {
	train, err := r.store.GetTrain(ctx, number)
	if err != nil {
		return nil, err
	}
	return &train, nil
}

// ListTrains returns every registered train
func (r *TrainRegistry) ListTrains(ctx context.Context) ([]models.Train, error) {
	return r.store.ListTrains(ctx)
}

// DeleteTrain removes the train with this number and departure date along
// with its seat map. A train with the same number but another date is left
// untouched, seats included.
func (r *TrainRegistry) DeleteTrain(ctx context.Context, number string, date models.Date) (err error) {
	defer r.metrics.Observe("delete_train", time.Now())
	defer func() {
		r.metrics.TrainChanges.WithLabelValues("delete", metrics.OutcomeOf(err)).Inc()
	}()

	unlock := r.locks.lock(number)
	defer unlock()

	err = r.store.RunInTx(ctx, func(gw database.Gateway) error {
		deleted, err := gw.DeleteTrain(ctx, number, date)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("train %s departing %s: %w", number, date, models.ErrNotFound)
		}
		return seating.New(gw, number).Destroy(ctx)
	})
	if err != nil {
		r.logFailure(err, "Failed to delete train", number)
		return err
	}

	r.log.Info().
		Str("train_number", number).
		Str("departure_date", date.String()).
		Msg("Train deleted")
	return nil
}

// logFailure keeps expected outcomes out of the error log
func (r *TrainRegistry) logFailure(err error, msg, number string) {
	event := r.log.Error()
	if !errors.Is(err, models.ErrStorage) {
		event = r.log.Warn()
	}
	event.Err(err).Str("train_number", number).Msg(msg)
}
