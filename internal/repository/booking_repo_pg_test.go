package repository

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *int64:
			*p = r.values[i].(int64)
		}
	}
	return nil
}

func TestScanBooking(t *testing.T) {
	dep := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	booked := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	passengers, err := json.Marshal([]domain.Passenger{{Title: "Ms", FirstName: "Asha", LastName: "Rao", Email: "a@x.in", Phone: "1"}})
	require.NoError(t, err)

	b, err := scanBooking(fakeRow{values: []any{
		"BK-1", "FL-9", "DEL", "BOM", dep, passengers, "Economy", int64(2500), booked, "wallet", "confirmed",
	}})
	require.NoError(t, err)

	assert.Equal(t, "BK-1", b.ID)
	assert.Equal(t, dep, b.DepartureDate)
	assert.Equal(t, domain.PaymentMethodWallet, b.PaymentMethod)
	assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
	require.Len(t, b.Passengers, 1)
	assert.Equal(t, "Asha", b.Passengers[0].FirstName)
}

func TestScanBooking_BadPassengers(t *testing.T) {
	_, err := scanBooking(fakeRow{values: []any{
		"BK-1", "FL-9", "DEL", "BOM", time.Now(), []byte("{"), "Economy", int64(1), time.Now(), "card", "confirmed",
	}})
	assert.Error(t, err)
}

func TestScanBooking_ScanError(t *testing.T) {
	_, err := scanBooking(fakeRow{err: errors.New("conn reset")})
	assert.EqualError(t, err, "conn reset")
}
