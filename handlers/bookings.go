package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"train-reservations/models"
)

// BookTicket books the next free seat of the requested category
func (h *Handler) BookTicket(c *gin.Context) {
	var req models.BookingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gender, err := models.ParseGender(req.PassengerGender)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger := models.Passenger{Name: req.PassengerName, Age: req.PassengerAge, Gender: gender}
	booking, err := h.reservations.BookTicket(c.Request.Context(), c.Param("number"), category, passenger)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.fail(c, err, "Failed to book ticket")
			return
		}
		c.JSON(statusFor(err), models.BookingResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: fmt.Sprintf("Seat %d booked successfully", booking.SeatNumber),
		Booking: booking,
	})
}

// CancelTicket frees a booked seat
func (h *Handler) CancelTicket(c *gin.Context) {
	number := c.Param("number")

	seatNumber, err := strconv.Atoi(c.Param("seat"))
	if err != nil || seatNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seat number"})
		return
	}

	if err := h.reservations.CancelTicket(c.Request.Context(), number, seatNumber); err != nil {
		h.fail(c, err, "Failed to cancel ticket")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Seat %d on train %s cancelled successfully", seatNumber, number),
	})
}

// ListSeats returns the full seat map of a train
func (h *Handler) ListSeats(c *gin.Context) {
	number := c.Param("number")

	seats, err := h.reservations.ListSeats(c.Request.Context(), number)
	if err != nil {
		h.fail(c, err, "Failed to retrieve seats")
		return
	}

	c.JSON(http.StatusOK, models.SeatMapResponse{TrainNumber: number, Seats: seats})
}

// Availability returns the number of free seats per category
func (h *Handler) Availability(c *gin.Context) {
	number := c.Param("number")

	free, err := h.reservations.Availability(c.Request.Context(), number)
	if err != nil {
		h.fail(c, err, "Failed to retrieve availability")
		return
	}

	total := 0
	for _, n := range free {
		total += n
	}
	c.JSON(http.StatusOK, models.AvailabilityResponse{TrainNumber: number, Available: free, Total: total})
}
