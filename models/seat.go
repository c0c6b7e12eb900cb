package models

import (
	"fmt"
	"strings"
)

// Category is the position class of a seat
type Category string

const (
	Window Category = "Window"
	Aisle  Category = "Aisle"
	Middle Category = "Middle"
)

// Categories lists every seat category in display order
var Categories = []Category{Window, Aisle, Middle}

// ParseCategory matches a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown seat category: %q", s)
}

// Gender of a passenger
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ParseGender matches a gender name case-insensitively
func ParseGender(s string) (Gender, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(Male)):
		return Male, nil
	case strings.EqualFold(strings.TrimSpace(s), string(Female)):
		return Female, nil
	}
	return "", fmt.Errorf("unknown passenger gender: %q", s)
}

// Passenger holds the traveller data attached to a booked seat
type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

// Seat is one numbered seat of a train's seat map.
// An unbooked seat always carries a zero Passenger.
type Seat struct {
	Number    int       `json:"seat_number"`
	Category  Category  `json:"category"`
	Booked    bool      `json:"booked"`
	Passenger Passenger `json:"passenger"`
}
