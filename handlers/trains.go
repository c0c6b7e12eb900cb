package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-reservations/models"
)

// AddTrain registers a new train with a fresh seat map
func (h *Handler) AddTrain(c *gin.Context) {
	var req models.TrainRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := models.ParseDate(req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	train := models.Train{
		Number:           req.Number,
		Name:             req.Name,
		StartDestination: req.StartDestination,
		EndDestination:   req.EndDestination,
		DepartureDate:    date,
	}

	if err := h.trains.AddTrain(c.Request.Context(), train); err != nil {
		h.fail(c, err, "Failed to add train")
		return
	}

	c.JSON(http.StatusCreated, models.TrainResponse{
		Success: true,
		Message: fmt.Sprintf("Train %s added successfully", train.Number),
		Train:   &train,
	})
}

// ListTrains returns all trains
func (h *Handler) ListTrains(c *gin.Context) {
	trains, err := h.trains.ListTrains(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to retrieve trains")
		return
	}

	c.JSON(http.StatusOK, trains)
}

// GetTrain returns a train by number
func (h *Handler) GetTrain(c *gin.Context) {
	train, err := h.trains.GetTrain(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.fail(c, err, "Failed to retrieve train")
		return
	}

	c.JSON(http.StatusOK, train)
}

// DeleteTrain removes a train and its seats; the departure date must match
func (h *Handler) DeleteTrain(c *gin.Context) {
	number := c.Param("number")

	date, err := models.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.trains.DeleteTrain(c.Request.Context(), number, date); err != nil {
		h.fail(c, err, "Failed to delete train")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Train %s departing %s deleted successfully", number, date),
	})
}
