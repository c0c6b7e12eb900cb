package models

import "errors"

var (
	// ErrDuplicateTrain is returned when a train number is already registered
	ErrDuplicateTrain = errors.New("train already exists")
	// ErrNotFound covers unknown trains, unknown seats and train/date mismatches
	ErrNotFound = errors.New("not found")
	// ErrNoSeatAvailable means every seat of the requested category is booked
	ErrNoSeatAvailable = errors.New("no seat available")
	// ErrSeatUnavailable means the seat was already booked at claim time
	ErrSeatUnavailable = errors.New("seat already booked")
	// ErrStorage marks failures of the persistence layer
	ErrStorage = errors.New("storage error")
	// ErrSeatMapExists is a storage conflict: seats already exist for the train
	ErrSeatMapExists = &StorageError{Op: "create seat map", Err: errors.New("seat map already exists")}
)

// StorageError wraps a failure reported by the store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
