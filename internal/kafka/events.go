package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

const (
	EventBookingCreated = "booking_created"
	EventWalletCredited = "wallet_credited"
	EventWalletDebited  = "wallet_debited"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	FlightID      string    `json:"flight_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureDate time.Time `json:"departure_date"`
	Passengers    int       `json:"passengers"`
	Email         string    `json:"email"`
	TotalAmount   int64     `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	RemoteStatus  string    `json:"remote_status,omitempty"`
}

// NewBookingEvent addresses the event to the lead passenger.
func NewBookingEvent(b *domain.Booking) BookingEvent {
	event := BookingEvent{
		Type:          EventBookingCreated,
		BookingID:     b.ID,
		FlightID:      b.FlightID,
		From:          b.FromCode,
		To:            b.ToCode,
		DepartureDate: b.DepartureDate,
		Passengers:    len(b.Passengers),
		TotalAmount:   b.TotalAmount,
		PaymentMethod: string(b.PaymentMethod),
	}
	if len(b.Passengers) > 0 {
		event.Email = b.Passengers[0].Email
	}
	return event
}

type WalletEvent struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Balance       int64     `json:"balance"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
}

func NewWalletEvent(txn domain.Transaction, balance int64) WalletEvent {
	eventType := EventWalletCredited
	if txn.Type == domain.TransactionDebit {
		eventType = EventWalletDebited
	}
	return WalletEvent{
		Type:          eventType,
		TransactionID: txn.ID,
		Amount:        txn.Amount,
		Balance:       balance,
		Description:   txn.Description,
		Date:          txn.Date,
	}
}

// DecodeBookingEvent parses a notifications topic payload.
func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("failed to decode booking event: %w", err)
	}
	return event, nil
}
