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

// ReservationService books and cancels seats on registered trains
type ReservationService struct {
	store   database.Transactor
	locks   *trainLocks
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// BookTicket claims the lowest free seat of category for passenger.
// Finding and claiming the seat happen under the train's lock and inside one
// transaction, so concurrent callers never receive the same seat.
func (s *ReservationService) BookTicket(ctx context.Context, trainNumber string, category models.Category, passenger models.Passenger) (booked *models.BookedSeat, err error) {
	defer s.metrics.Observe("book_ticket", time.Now())
	defer func() {
		s.metrics.Bookings.WithLabelValues(string(category), metrics.OutcomeOf(err)).Inc()
	}()

	unlock := s.locks.lock(trainNumber)
	defer unlock()

	err = s.store.RunInTx(ctx, func(gw database.Gateway) error {
		if _, err := gw.GetTrain(ctx, trainNumber); err != nil {
			return err
		}

		seatMap := seating.New(gw, trainNumber)
		seatNumber, err := seatMap.FindNextAvailable(ctx, category)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("no %s seat available on train %s: %w", category, trainNumber, models.ErrNoSeatAvailable)
			}
			return err
		}

		if err := seatMap.Book(ctx, seatNumber, passenger); err != nil {
			return err
		}

		booked = &models.BookedSeat{
			TrainNumber: trainNumber,
			SeatNumber:  seatNumber,
			Category:    category,
			Passenger:   passenger,
		}
		return nil
	})
	if err != nil {
		s.logFailure(err, "Booking failed", trainNumber)
		return nil, err
	}

	s.log.Info().
		Str("train_number", trainNumber).
		Int("seat_number", booked.SeatNumber).
		Str("category", string(category)).
		Msg("Ticket booked")
	return booked, nil
}

// CancelTicket releases a seat. Cancelling a seat that is not booked succeeds.
func (s *ReservationService) CancelTicket(ctx context.Context, trainNumber string, seatNumber int) (err error) {
	defer s.metrics.Observe("cancel_ticket", time.Now())
	defer func() {
		s.metrics.Cancellations.WithLabelValues(metrics.OutcomeOf(err)).Inc()
	}()

	unlock := s.locks.lock(trainNumber)
	defer unlock()

	err = s.store.RunInTx(ctx, func(gw database.Gateway) error {
		if _, err := gw.GetTrain(ctx, trainNumber); err != nil {
			return err
		}
		return seating.New(gw, trainNumber).Cancel(ctx, seatNumber)
	})
	if err != nil {
		s.logFailure(err, "Cancellation failed", trainNumber)
		return err
	}

	s.log.Info().
		Str("train_number", trainNumber).
		Int("seat_number", seatNumber).
		Msg("Ticket cancelled")
	return nil
}

// ListSeats returns the seat map of a train in seat order
func (s *ReservationService) ListSeats(ctx context.Context, trainNumber string) ([]models.Seat, error) {
	var seats []models.Seat
	err := s.store.RunInTx(ctx, func(gw database.Gateway) error {
		if _, err := gw.GetTrain(ctx, trainNumber); err != nil {
			return err
		}
		var err error
		seats, err = seating.New(gw, trainNumber).ListSeats(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// Availability counts the free seats of each category on a train
func (s *ReservationService) Availability(ctx context.Context, trainNumber string) (map[models.Category]int, error) {
	var free map[models.Category]int
	err := s.store.RunInTx(ctx, func(gw database.Gateway) error {
		if _, err := gw.GetTrain(ctx, trainNumber); err != nil {
			return err
		}
		var err error
		free, err = seating.New(gw, trainNumber).Availability(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return free, nil
}

func (s *ReservationService) logFailure(err error, msg, trainNumber string) {
	event := s.log.Error()
	if !errors.Is(err, models.ErrStorage) {
		event = s.log.Info()
	}
	event.Err(err).Str("train_number", trainNumber).Msg(msg)
}
