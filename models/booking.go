package models

// BookedSeat is the result of a successful seat claim
type BookedSeat struct {
	TrainNumber string    `json:"train_number"`
	SeatNumber  int       `json:"seat_number"`
	Category    Category  `json:"category"`
	Passenger   Passenger `json:"passenger"`
}

// BookingRequest represents a ticket booking request
type BookingRequest struct {
	Category        string `json:"category" binding:"required,oneof=Window Aisle Middle"`
	PassengerName   string `json:"passenger_name" binding:"required"`
	PassengerAge    int    `json:"passenger_age" binding:"required,min=1"`
	PassengerGender string `json:"passenger_gender" binding:"required,oneof=Male Female"`
}

// BookingResponse represents a booking creation response
type BookingResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Booking *BookedSeat `json:"booking,omitempty"`
}

// SeatMapResponse lists a train's seats
type SeatMapResponse struct {
	TrainNumber string `json:"train_number"`
	Seats       []Seat `json:"seats"`
}

// AvailabilityResponse counts free seats per category
type AvailabilityResponse struct {
	TrainNumber string           `json:"train_number"`
	Available   map[Category]int `json:"available"`
	Total       int              `json:"total"`
}
