package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completePassenger() Passenger {
	return Passenger{Title: "Ms", FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210"}
}

func TestValidatePassengers(t *testing.T) {
	testCases := []struct {
		name        string
		passengers  []Passenger
		expectedErr string
	}{
		{name: "complete", passengers: []Passenger{completePassenger()}},
		{name: "empty list", passengers: nil, expectedErr: "at least one passenger"},
		{
			name: "missing email",
			passengers: []Passenger{completePassenger(), func() Passenger {
				p := completePassenger()
				p.Email = ""
				return p
			}()},
			expectedErr: "passenger 2: email is required",
		},
		{
			name:        "everything missing",
			passengers:  []Passenger{{DateOfBirth: "1990-01-01"}},
			expectedErr: "passenger 1: title is required; passenger 1: first name is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassengers(tc.passengers)
			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestBooking_StatusAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	upcoming := Booking{DepartureDate: now.Add(24 * time.Hour), Status: BookingStatusConfirmed}
	departed := Booking{DepartureDate: now.Add(-time.Hour), Status: BookingStatusConfirmed}
	completed := Booking{DepartureDate: now.Add(24 * time.Hour), Status: BookingStatusCompleted}

	assert.Equal(t, BookingStatusConfirmed, upcoming.StatusAt(now))
	assert.True(t, upcoming.UpcomingAt(now))

	assert.Equal(t, BookingStatusCompleted, departed.StatusAt(now))
	assert.False(t, departed.UpcomingAt(now))

	assert.Equal(t, BookingStatusCompleted, completed.StatusAt(now))
	assert.False(t, completed.UpcomingAt(now))

	// departure exactly now counts as past
	atNow := Booking{DepartureDate: now, Status: BookingStatusConfirmed}
	assert.Equal(t, BookingStatusCompleted, atNow.StatusAt(now))
	assert.Equal(t, BookingStatusConfirmed, atNow.Status)
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentMethodWallet.Valid())
	assert.True(t, PaymentMethodCard.Valid())
	assert.False(t, PaymentMethod("upi").Valid())
}
