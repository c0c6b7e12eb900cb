package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of departure dates
const DateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day component
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format: %w", err)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// UnmarshalJSON accepts "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the date back as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("\"%s\"", d.String())), nil
}

// Train represents a train service on a given departure date
type Train struct {
	Number           string `json:"train_number"`
	Name             string `json:"train_name"`
	StartDestination string `json:"start_destination"`
	EndDestination   string `json:"end_destination"`
	DepartureDate    Date   `json:"departure_date"`
}

// TrainRequest represents a train creation request
type TrainRequest struct {
	Number           string `json:"train_number" binding:"required"`
	Name             string `json:"train_name" binding:"required"`
	StartDestination string `json:"start_destination" binding:"required"`
	EndDestination   string `json:"end_destination" binding:"required"`
	DepartureDate    string `json:"departure_date" binding:"required"`
}

// TrainResponse represents the result of a train operation
type TrainResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Train   *Train `json:"train,omitempty"`
}
