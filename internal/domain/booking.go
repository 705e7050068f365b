package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCard   PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodWallet || m == PaymentMethodCard
}

type Passenger struct {
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dob,omitempty"`
}

// MissingFields lists the required fields left empty.
func (p Passenger) MissingFields() []string {
	var missing []string
	if p.Title == "" {
		missing = append(missing, "title")
	}
	if p.FirstName == "" {
		missing = append(missing, "first name")
	}
	if p.LastName == "" {
		missing = append(missing, "last name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// ValidatePassengers blocks the booking flow unless every passenger is complete.
func ValidatePassengers(passengers []Passenger) error {
	if len(passengers) == 0 {
		return NewValidationError("at least one passenger is required")
	}
	var problems []string
	for i, p := range passengers {
		for _, field := range p.MissingFields() {
			problems = append(problems, fmt.Sprintf("passenger %d: %s is required", i+1, field))
		}
	}
	if len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

// Booking is immutable once created. Completion is derived from the clock,
// never written back.
type Booking struct {
	ID            string        `json:"id"`
	FlightID      string        `json:"flight_id"`
	FromCode      string        `json:"from_code"`
	ToCode        string        `json:"to_code"`
	DepartureDate time.Time     `json:"departure_date"`
	Passengers    []Passenger   `json:"passengers"`
	TravelClass   string        `json:"travel_class"`
	TotalAmount   int64         `json:"total_amount"`
	BookingDate   time.Time     `json:"booking_date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        BookingStatus `json:"status"`
}

func (b Booking) StatusAt(now time.Time) BookingStatus {
	if b.Status == BookingStatusCompleted || !b.DepartureDate.After(now) {
		return BookingStatusCompleted
	}
	return b.Status
}

func (b Booking) UpcomingAt(now time.Time) bool {
	return b.StatusAt(now) == BookingStatusConfirmed
}
