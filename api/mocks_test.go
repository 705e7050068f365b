package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, input flights.SearchInput) (*flights.SearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.SearchResult), args.Error(1)
}

func (m *MockFlightUseCase) Offers(ctx context.Context, sessionID string, cfg domain.FilterConfig) ([]domain.FlightOffer, error) {
	args := m.Called(ctx, sessionID, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightOffer), args.Error(1)
}

func (m *MockFlightUseCase) GetOffer(ctx context.Context, sessionID, offerID string) (*domain.SearchSession, *domain.FlightOffer, error) {
	args := m.Called(ctx, sessionID, offerID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.SearchSession), args.Get(1).(*domain.FlightOffer), args.Error(2)
}

func (m *MockFlightUseCase) Attempt(ctx context.Context, sessionID, offerID string) (*domain.FlightOffer, error) {
	args := m.Called(ctx, sessionID, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightOffer), args.Error(1)
}

func (m *MockFlightUseCase) Airports(query string) []domain.Airport {
	args := m.Called(query)
	return args.Get(0).([]domain.Airport)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*booking.Confirmation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Confirmation), args.Error(1)
}

func (m *MockBookingUseCase) Finalize(ctx context.Context, input booking.FinalizeInput) (*booking.Confirmation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Confirmation), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context) (*booking.BookingList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookingList), args.Error(1)
}

func (m *MockBookingUseCase) SyncPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockWalletUseCase struct {
	mock.Mock
}

func (m *MockWalletUseCase) Wallet(ctx context.Context) (domain.Wallet, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Wallet), args.Error(1)
}

func (m *MockWalletUseCase) Balance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletUseCase) Credit(ctx context.Context, amount int64) (*domain.Transaction, int64, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletUseCase) CreditRaw(ctx context.Context, raw string) (*domain.Transaction, int64, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(int64), args.Error(2)
}
