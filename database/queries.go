package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"train-reservations/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements Gateway on top of a connection or a transaction
type queries struct {
	q       querier
	dialect dialect
}

func storageErr(op string, err error) error {
	return &models.StorageError{Op: op, Err: err}
}

func (s *queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.q.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.q.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// InsertTrain stores a new train record
func (s *queries) InsertTrain(ctx context.Context, train models.Train) error {
	_, err := s.exec(ctx, `
		INSERT INTO trains (train_number, train_name, start_destination, end_destination, departure_date)
		VALUES (?, ?, ?, ?, ?)
	`, train.Number, train.Name, train.StartDestination, train.EndDestination, train.DepartureDate.String())
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return fmt.Errorf("train %s: %w", train.Number, models.ErrDuplicateTrain)
		}
		return storageErr("insert train", err)
	}
	return nil
}

// GetTrain retrieves a train by number
func (s *queries) GetTrain(ctx context.Context, number string) (models.Train, error) {
	row := s.queryRow(ctx, `
		SELECT train_number, train_name, start_destination, end_destination, departure_date
		FROM trains
		WHERE train_number = ?
	`, number)
	train, err := scanTrain(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Train{}, fmt.Errorf("train %s: %w", number, models.ErrNotFound)
		}
		return models.Train{}, storageErr("get train", err)
	}
	return train, nil
}

// ListTrains retrieves all trains ordered by departure date
func (s *queries) ListTrains(ctx context.Context) ([]models.Train, error) {
	rows, err := s.query(ctx, `
		SELECT train_number, train_name, start_destination, end_destination, departure_date
		FROM trains
		ORDER BY departure_date, train_number
	`)
	if err != nil {
		return nil, storageErr("list trains", err)
	}
	defer rows.Close()

	trains := []models.Train{}
	for rows.Next() {
		train, err := scanTrain(rows)
		if err != nil {
			return nil, storageErr("scan train", err)
		}
		trains = append(trains, train)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list trains", err)
	}
	return trains, nil
}

// DeleteTrain removes the train matching number and departure date
func (s *queries) DeleteTrain(ctx context.Context, number string, date models.Date) (bool, error) {
	res, err := s.exec(ctx, `
		DELETE FROM trains WHERE train_number = ? AND departure_date = ?
	`, number, date.String())
	if err != nil {
		return false, storageErr("delete train", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete train", err)
	}
	return n > 0, nil
}

// CreateSeats seeds the seat collection of a train
func (s *queries) CreateSeats(ctx context.Context, trainNumber string, seats []models.Seat) error {
	var existing int
	err := s.queryRow(ctx, `
		SELECT COUNT(*) FROM seats WHERE train_number = ?
	`, trainNumber).Scan(&existing)
	if err != nil {
		return storageErr("count seats", err)
	}
	if existing > 0 {
		return fmt.Errorf("train %s: %w", trainNumber, models.ErrSeatMapExists)
	}

	for _, seat := range seats {
		_, err := s.exec(ctx, `
			INSERT INTO seats (train_number, seat_number, category, booked, passenger_name, passenger_age, passenger_gender)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, trainNumber, seat.Number, string(seat.Category), boolToInt(seat.Booked),
			seat.Passenger.Name, seat.Passenger.Age, string(seat.Passenger.Gender))
		if err != nil {
			if s.dialect.isUniqueViolation(err) {
				return fmt.Errorf("train %s: %w", trainNumber, models.ErrSeatMapExists)
			}
			return storageErr("insert seat", err)
		}
	}
	return nil
}

// DropSeats removes every seat of a train
func (s *queries) DropSeats(ctx context.Context, trainNumber string) error {
	if _, err := s.exec(ctx, `DELETE FROM seats WHERE train_number = ?`, trainNumber); err != nil {
		return storageErr("drop seats", err)
	}
	return nil
}

// GetSeat retrieves a single seat
func (s *queries) GetSeat(ctx context.Context, trainNumber string, seatNumber int) (models.Seat, error) {
	row := s.queryRow(ctx, `
		SELECT seat_number, category, booked, passenger_name, passenger_age, passenger_gender
		FROM seats
		WHERE train_number = ? AND seat_number = ?
	`, trainNumber, seatNumber)
	seat, err := scanSeat(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seat{}, fmt.Errorf("seat %d on train %s: %w", seatNumber, trainNumber, models.ErrNotFound)
		}
		return models.Seat{}, storageErr("get seat", err)
	}
	return seat, nil
}

// ListSeats retrieves the seat map of a train in seat order
func (s *queries) ListSeats(ctx context.Context, trainNumber string) ([]models.Seat, error) {
	rows, err := s.query(ctx, `
		SELECT seat_number, category, booked, passenger_name, passenger_age, passenger_gender
		FROM seats
		WHERE train_number = ?
		ORDER BY seat_number ASC
	`, trainNumber)
	if err != nil {
		return nil, storageErr("list seats", err)
	}
	defer rows.Close()

	seats := []models.Seat{}
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, storageErr("scan seat", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list seats", err)
	}
	return seats, nil
}

// FirstFreeSeat finds the lowest-numbered unbooked seat of a category
func (s *queries) FirstFreeSeat(ctx context.Context, trainNumber string, category models.Category) (int, error) {
	var seatNumber int
	err := s.queryRow(ctx, `
		SELECT seat_number
		FROM seats
		WHERE train_number = ? AND category = ? AND booked = 0
		ORDER BY seat_number ASC
		LIMIT 1`+s.dialect.lockClause(), trainNumber, string(category)).Scan(&seatNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s seat on train %s: %w", category, trainNumber, models.ErrNotFound)
		}
		return 0, storageErr("find free seat", err)
	}
	return seatNumber, nil
}

// ClaimSeat books a seat only if it is currently unbooked
func (s *queries) ClaimSeat(ctx context.Context, trainNumber string, seatNumber int, passenger models.Passenger) (bool, error) {
	res, err := s.exec(ctx, `
		UPDATE seats
		SET booked = 1, passenger_name = ?, passenger_age = ?, passenger_gender = ?
		WHERE train_number = ? AND seat_number = ? AND booked = 0
	`, passenger.Name, passenger.Age, string(passenger.Gender), trainNumber, seatNumber)
	if err != nil {
		return false, storageErr("claim seat", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("claim seat", err)
	}
	return n > 0, nil
}

// ReleaseSeat unbooks a seat and clears its passenger data
func (s *queries) ReleaseSeat(ctx context.Context, trainNumber string, seatNumber int) (bool, error) {
	res, err := s.exec(ctx, `
		UPDATE seats
		SET booked = 0, passenger_name = '', passenger_age = 0, passenger_gender = ''
		WHERE train_number = ? AND seat_number = ?
	`, trainNumber, seatNumber)
	if err != nil {
		return false, storageErr("release seat", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("release seat", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrain(row scanner) (models.Train, error) {
	var train models.Train
	var date string
	if err := row.Scan(&train.Number, &train.Name, &train.StartDestination, &train.EndDestination, &date); err != nil {
		return models.Train{}, err
	}
	parsed, err := models.ParseDate(date)
	if err != nil {
		return models.Train{}, err
	}
	train.DepartureDate = parsed
	return train, nil
}

func scanSeat(row scanner) (models.Seat, error) {
	var seat models.Seat
	var category, gender string
	var booked int
	err := row.Scan(&seat.Number, &category, &booked,
		&seat.Passenger.Name, &seat.Passenger.Age, &gender)
	if err != nil {
		return models.Seat{}, err
	}
	seat.Category = models.Category(category)
	seat.Booked = booked != 0
	seat.Passenger.Gender = models.Gender(gender)
	return seat, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
