package domain

import "time"

type Airline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

// FlightOffer is a generated, not yet booked listing. Price never drops below BasePrice.
type FlightOffer struct {
	ID              string     `json:"id"`
	AirlineID       string     `json:"airline_id"`
	Airline         string     `json:"airline"`
	From            string     `json:"from"`
	To              string     `json:"to"`
	DepartureTime   time.Time  `json:"departure_time"`
	ArrivalTime     time.Time  `json:"arrival_time"`
	DurationMinutes int        `json:"duration_minutes"`
	BasePrice       int64      `json:"base_price"`
	Price           int64      `json:"price"`
	Stops           int        `json:"stops"`
	Attempts        int        `json:"attempts"`
	LastAttemptAt   *time.Time `json:"last_attempt_at,omitempty"`
}

func (f FlightOffer) Duration() time.Duration {
	return time.Duration(f.DurationMinutes) * time.Minute
}
