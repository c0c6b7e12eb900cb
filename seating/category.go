// Package seating models the fixed seat layout of a train and the state
// transitions of its individual seats.
package seating

import "train-reservations/models"

// DefaultCapacity is the number of seats in every train
const DefaultCapacity = 50

// pattern maps seat_number % 10 to a category. Each block of ten seats holds
// four window, four aisle and two middle seats.
var pattern = [10]models.Category{
	models.Window, // 0
	models.Middle, // 1
	models.Aisle,  // 2
	models.Aisle,  // 3
	models.Window, // 4
	models.Window, // 5
	models.Aisle,  // 6
	models.Aisle,  // 7
	models.Middle, // 8
	models.Window, // 9
}

// Categorize returns the category of a seat from its position
func Categorize(seatNumber int) models.Category {
	idx := seatNumber % 10
	if idx < 0 {
		idx += 10
	}
	return pattern[idx]
}

// Layout builds the unbooked seats 1..capacity
func Layout(capacity int) []models.Seat {
	seats := make([]models.Seat, 0, capacity)
	for n := 1; n <= capacity; n++ {
		seats = append(seats, models.Seat{Number: n, Category: Categorize(n)})
	}
	return seats
}
