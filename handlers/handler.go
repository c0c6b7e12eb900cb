package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"train-reservations/models"
)

// TrainService is what the handlers need from the train registry
type TrainService interface {
	AddTrain(ctx context.Context, train models.Train) error
	GetTrain(ctx context.Context, number string) (*models.Train, error)
	ListTrains(ctx context.Context) ([]models.Train, error)
	DeleteTrain(ctx context.Context, number string, date models.Date) error
}

// ReservationService is what the handlers need from the reservation service
type ReservationService interface {
	BookTicket(ctx context.Context, trainNumber string, category models.Category, passenger models.Passenger) (*models.BookedSeat, error)
	CancelTicket(ctx context.Context, trainNumber string, seatNumber int) error
	ListSeats(ctx context.Context, trainNumber string) ([]models.Seat, error)
	Availability(ctx context.Context, trainNumber string) (map[models.Category]int, error)
}

// Handler serves the HTTP API
type Handler struct {
	trains       TrainService
	reservations ReservationService
	log          zerolog.Logger
}

// New creates a Handler
func New(trains TrainService, reservations ReservationService, log zerolog.Logger) *Handler {
	return &Handler{trains: trains, reservations: reservations, log: log}
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDuplicateTrain):
		return http.StatusConflict
	case errors.Is(err, models.ErrNoSeatAvailable), errors.Is(err, models.ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes an error response; storage failures are not echoed to clients
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg(msg)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
