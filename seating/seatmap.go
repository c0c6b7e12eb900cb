package seating

import (
	"context"
	"fmt"

	"train-reservations/database"
	"train-reservations/models"
)

// SeatMap is the seat collection of one train. It holds no seat state of its
// own; every call reads or writes through the gateway it was built with, so a
// SeatMap bound to a transaction sees that transaction's view.
// The stored rows define which seats exist: the capacity a map was seeded
// with is fixed once Initialize succeeds.
type SeatMap struct {
	gw          database.Gateway
	trainNumber string
}

// New binds a seat map for trainNumber to gw
func New(gw database.Gateway, trainNumber string) *SeatMap {
	return &SeatMap{gw: gw, trainNumber: trainNumber}
}

// Initialize seeds capacity categorized, unbooked seats; a capacity below 1
// means DefaultCapacity.
// Fails with models.ErrSeatMapExists if the train already has seats.
func (m *SeatMap) Initialize(ctx context.Context, capacity int) error {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return m.gw.CreateSeats(ctx, m.trainNumber, Layout(capacity))
}

// FindNextAvailable returns the lowest unbooked seat of category
func (m *SeatMap) FindNextAvailable(ctx context.Context, category models.Category) (int, error) {
	return m.gw.FirstFreeSeat(ctx, m.trainNumber, category)
}

// Book claims an unbooked seat for passenger
func (m *SeatMap) Book(ctx context.Context, seatNumber int, passenger models.Passenger) error {
	claimed, err := m.gw.ClaimSeat(ctx, m.trainNumber, seatNumber, passenger)
	if err != nil {
		return err
	}
	if claimed {
		return nil
	}
	// nothing matched: either the row is missing or it is already booked
	if _, err := m.gw.GetSeat(ctx, m.trainNumber, seatNumber); err != nil {
		return err
	}
	return fmt.Errorf("seat %d on train %s: %w", seatNumber, m.trainNumber, models.ErrSeatUnavailable)
}

// Cancel returns a seat to the unbooked state. Cancelling a free seat succeeds.
func (m *SeatMap) Cancel(ctx context.Context, seatNumber int) error {
	released, err := m.gw.ReleaseSeat(ctx, m.trainNumber, seatNumber)
	if err != nil {
		return err
	}
	if !released {
		return fmt.Errorf("seat %d on train %s: %w", seatNumber, m.trainNumber, models.ErrNotFound)
	}
	return nil
}

// ListSeats returns every seat in ascending seat number order
func (m *SeatMap) ListSeats(ctx context.Context) ([]models.Seat, error) {
	return m.gw.ListSeats(ctx, m.trainNumber)
}

// Availability counts unbooked seats per category
func (m *SeatMap) Availability(ctx context.Context) (map[models.Category]int, error) {
	seats, err := m.gw.ListSeats(ctx, m.trainNumber)
	if err != nil {
		return nil, err
	}
	free := make(map[models.Category]int, len(models.Categories))
	for _, c := range models.Categories {
		free[c] = 0
	}
	for _, seat := range seats {
		if !seat.Booked {
			free[seat.Category]++
		}
	}
	return free, nil
}

// Destroy removes the whole seat collection. Safe to call repeatedly.
func (m *SeatMap) Destroy(ctx context.Context) error {
	return m.gw.DropSeats(ctx, m.trainNumber)
}
