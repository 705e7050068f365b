package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

// BookingRepository is the remote booking table. Writes are best-effort from
// the caller's point of view; the local store stays authoritative.
type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByDate(ctx context.Context) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const createBookingsTable = `CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	flight_id TEXT NOT NULL,
	from_code TEXT NOT NULL,
	to_code TEXT NOT NULL,
	departure_date TIMESTAMPTZ NOT NULL,
	passengers JSONB NOT NULL,
	travel_class TEXT NOT NULL,
	total_amount BIGINT NOT NULL,
	booking_date TIMESTAMPTZ NOT NULL,
	payment_method TEXT NOT NULL,
	status TEXT NOT NULL
)`

const bookingColumns = `id, flight_id, from_code, to_code, departure_date, passengers, travel_class, total_amount, booking_date, payment_method, status`

// Migrate creates the bookings table when missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

// Insert is idempotent on id so that the sync sweep can replay it.
func (r *PGBookingRepository) Insert(ctx context.Context, b *domain.Booking) error {
	passengers, err := json.Marshal(b.Passengers)
	if err != nil {
		return fmt.Errorf("encode passengers: %w", err)
	}

	_, err = r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		b.ID, b.FlightID, b.FromCode, b.ToCode, b.DepartureDate, passengers,
		b.TravelClass, b.TotalAmount, b.BookingDate, string(b.PaymentMethod), string(b.Status))
	if err != nil {
		return fmt.Errorf("insert booking %s: %w", b.ID, err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Kind: "booking", ID: id}
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByDate(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b          domain.Booking
		passengers []byte
		method     string
		status     string
	)
	if err := row.Scan(&b.ID, &b.FlightID, &b.FromCode, &b.ToCode, &b.DepartureDate, &passengers,
		&b.TravelClass, &b.TotalAmount, &b.BookingDate, &method, &status); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, fmt.Errorf("decode passengers of %s: %w", b.ID, err)
	}
	b.PaymentMethod = domain.PaymentMethod(method)
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
