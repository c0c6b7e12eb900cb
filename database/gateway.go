package database

import (
	"context"

	"train-reservations/models"
)

// Gateway is the persistence contract the reservation core works against.
// Implementations report unknown rows with models.ErrNotFound and every
// other failure as a *models.StorageError.
type Gateway interface {
	// InsertTrain stores a new train; models.ErrDuplicateTrain on collision
	InsertTrain(ctx context.Context, train models.Train) error
	GetTrain(ctx context.Context, number string) (models.Train, error)
	ListTrains(ctx context.Context) ([]models.Train, error)
	// DeleteTrain removes the train matching both number and date
	DeleteTrain(ctx context.Context, number string, date models.Date) (bool, error)

	// CreateSeats seeds a seat collection; models.ErrSeatMapExists if one exists
	CreateSeats(ctx context.Context, trainNumber string, seats []models.Seat) error
	// DropSeats removes the whole seat collection, a no-op when absent
	DropSeats(ctx context.Context, trainNumber string) error
	GetSeat(ctx context.Context, trainNumber string, seatNumber int) (models.Seat, error)
	ListSeats(ctx context.Context, trainNumber string) ([]models.Seat, error)
	// FirstFreeSeat returns the lowest unbooked seat number of a category
	FirstFreeSeat(ctx context.Context, trainNumber string, category models.Category) (int, error)
	// ClaimSeat books an unbooked seat; false when no unbooked row matched
	ClaimSeat(ctx context.Context, trainNumber string, seatNumber int, passenger models.Passenger) (bool, error)
	// ReleaseSeat unbooks a seat; false when the seat does not exist
	ReleaseSeat(ctx context.Context, trainNumber string, seatNumber int) (bool, error)
}

// Transactor runs units of work spanning several Gateway calls
type Transactor interface {
	Gateway
	RunInTx(ctx context.Context, fn func(Gateway) error) error
}

var _ Transactor = (*Store)(nil)
