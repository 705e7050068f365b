package booking

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/wallet"
	"github.com/Domenick1991/flightdesk/internal/store"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*Confirmation, error)
	Finalize(ctx context.Context, input FinalizeInput) (*Confirmation, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) (*BookingList, error)
	SyncPending(ctx context.Context) (int, error)
}

// Offers resolves a session offer at its current, possibly repriced, price.
type Offers interface {
	GetOffer(ctx context.Context, sessionID, offerID string) (*domain.SearchSession, *domain.FlightOffer, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// WalletEvents announces the debit committed together with a wallet-paid booking.
type WalletEvents interface {
	Publish(ctx context.Context, txn domain.Transaction, balance int64)
}

type RemoteStatus string

const (
	RemotePersisted RemoteStatus = "persisted"
	RemoteDegraded  RemoteStatus = "degraded"
	RemoteSkipped   RemoteStatus = "skipped"
)

// PersistResult reports what happened to the remote copy. A degraded result
// still means the booking is committed locally.
type PersistResult struct {
	Status RemoteStatus `json:"status"`
	Err    error        `json:"-"`
	Error  string       `json:"error,omitempty"`
}

type Confirmation struct {
	Booking       domain.Booking `json:"booking"`
	Remote        PersistResult  `json:"remote"`
	WalletBalance *int64         `json:"wallet_balance,omitempty"`
}

type BookingList struct {
	Upcoming []domain.Booking `json:"upcoming"`
	Past     []domain.Booking `json:"past"`
}

type CreateBookingInput struct {
	SessionID     string               `json:"session_id"`
	OfferID       string               `json:"offer_id"`
	Passengers    []domain.Passenger   `json:"passengers"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type FinalizeInput struct {
	FlightID      string
	From          string
	To            string
	DepartureDate time.Time
	TravelClass   string
	Passengers    []domain.Passenger
	PaymentMethod domain.PaymentMethod
	TotalAmount   int64
}

type BookingService struct {
	store              *store.Store
	remote             repository.BookingRepository
	offers             Offers
	producer           Producer
	bookingTopic       string
	walletEvents       WalletEvents
	notificationsTopic string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

// WithRemote enables the remote booking store.
func WithRemote(remote repository.BookingRepository) BookingServiceOption {
	return func(s *BookingService) {
		s.remote = remote
	}
}

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithWalletEvents(events WalletEvents) BookingServiceOption {
	return func(s *BookingService) {
		s.walletEvents = events
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(st *store.Store, offers Offers, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		store:  st,
		offers: offers,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking books an offer of a search session for every passenger of
// the search, at the offer's current price.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*Confirmation, error) {
	session, offer, err := s.offers.GetOffer(ctx, input.SessionID, input.OfferID)
	if err != nil {
		return nil, err
	}
	if n := len(input.Passengers); n > 0 && n != session.Query.Passengers {
		return nil, domain.NewValidationError(fmt.Sprintf("expected %d passengers, got %d", session.Query.Passengers, n))
	}

	return s.Finalize(ctx, FinalizeInput{
		FlightID:      offer.ID,
		From:          offer.From,
		To:            offer.To,
		DepartureDate: offer.DepartureTime,
		TravelClass:   session.Query.Class,
		Passengers:    input.Passengers,
		PaymentMethod: input.PaymentMethod,
		TotalAmount:   offer.Price * int64(session.Query.Passengers),
	})
}

// Finalize validates the request and commits the booking together with the
// wallet debit in one local transaction. The remote write happens after the
// commit and never undoes it.
func (s *BookingService) Finalize(ctx context.Context, input FinalizeInput) (*Confirmation, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := s.now()
	booking := domain.Booking{
		ID:            "BK-" + shortID(),
		FlightID:      input.FlightID,
		FromCode:      input.From,
		ToCode:        input.To,
		DepartureDate: input.DepartureDate,
		Passengers:    input.Passengers,
		TravelClass:   input.TravelClass,
		TotalAmount:   input.TotalAmount,
		BookingDate:   now,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.BookingStatusConfirmed,
	}

	var (
		debit   *domain.Transaction
		balance int64
	)
	err := s.store.Update(func(tx *store.Tx) error {
		if booking.PaymentMethod == domain.PaymentMethodWallet {
			txn := wallet.NewTransaction(domain.TransactionDebit, booking.TotalAmount, wallet.DebitDescription(booking.FromCode, booking.ToCode), now)
			var err error
			if balance, err = wallet.Debit(tx, txn); err != nil {
				return err
			}
			debit = &txn
		}
		return tx.AppendBooking(booking)
	})
	if err != nil {
		return nil, err
	}

	confirmation := &Confirmation{Booking: booking, Remote: s.persistRemote(ctx, &booking)}
	if debit != nil {
		confirmation.WalletBalance = &balance
	}

	s.publishBooking(ctx, &booking, confirmation.Remote.Status)
	if debit != nil && s.walletEvents != nil {
		s.walletEvents.Publish(ctx, *debit, balance)
	}
	return confirmation, nil
}

func (s *BookingService) persistRemote(ctx context.Context, booking *domain.Booking) PersistResult {
	if s.remote == nil {
		return PersistResult{Status: RemoteSkipped}
	}
	err := s.remote.Insert(ctx, booking)
	if err == nil {
		return PersistResult{Status: RemotePersisted}
	}

	log.Printf("WARNING: remote store failed for booking %s, kept locally only: %v", booking.ID, err)
	if qErr := s.markPending(booking.ID); qErr != nil {
		log.Printf("WARNING: could not queue booking %s for remote sync: %v", booking.ID, qErr)
	}
	return PersistResult{Status: RemoteDegraded, Err: err, Error: err.Error()}
}

func (s *BookingService) markPending(id string) error {
	return s.store.Update(func(tx *store.Tx) error {
		ids, err := tx.PendingRemoteSync()
		if err != nil {
			return err
		}
		if slices.Contains(ids, id) {
			return nil
		}
		return tx.SetPendingRemoteSync(append(ids, id))
	})
}

// Get looks in the local store first, then in the remote one. The status is
// derived from the current clock the same way List does it.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.store.Booking(id)
	if err != nil {
		var nf *domain.NotFoundError
		if !errors.As(err, &nf) || s.remote == nil {
			return nil, err
		}
		if b, err = s.remote.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	b.Status = b.StatusAt(s.now())
	return b, nil
}

// List merges local and remote bookings, newest booking first, and splits
// them by derived status. A failing remote store only narrows the result.
func (s *BookingService) List(ctx context.Context) (*BookingList, error) {
	local, err := s.store.Bookings()
	if err != nil {
		return nil, err
	}

	all := local
	if s.remote != nil {
		remote, err := s.remote.ListByDate(ctx)
		if err != nil {
			log.Printf("WARNING: remote store unavailable, listing local bookings only: %v", err)
		}
		seen := make(map[string]struct{}, len(local))
		for _, b := range local {
			seen[b.ID] = struct{}{}
		}
		for _, b := range remote {
			if _, dup := seen[b.ID]; !dup {
				all = append(all, b)
			}
		}
	}

	slices.SortStableFunc(all, func(a, b domain.Booking) int {
		return cmp.Compare(b.BookingDate.UnixNano(), a.BookingDate.UnixNano())
	})

	now := s.now()
	list := &BookingList{Upcoming: []domain.Booking{}, Past: []domain.Booking{}}
	for _, b := range all {
		b.Status = b.StatusAt(now)
		if b.Status == domain.BookingStatusConfirmed {
			list.Upcoming = append(list.Upcoming, b)
		} else {
			list.Past = append(list.Past, b)
		}
	}
	return list, nil
}

// SyncPending replays remote inserts that degraded earlier and returns how
// many went through.
func (s *BookingService) SyncPending(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, nil
	}

	var pending []string
	err := s.store.View(func(tx *store.Tx) error {
		var err error
		pending, err = tx.PendingRemoteSync()
		return err
	})
	if err != nil || len(pending) == 0 {
		return 0, err
	}

	synced := make(map[string]struct{}, len(pending))
	for _, id := range pending {
		b, err := s.store.Booking(id)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				synced[id] = struct{}{}
				continue
			}
			return 0, err
		}
		if err := s.remote.Insert(ctx, b); err != nil {
			log.Printf("WARNING: remote sync of booking %s failed: %v", id, err)
			continue
		}
		synced[id] = struct{}{}
	}

	err = s.store.Update(func(tx *store.Tx) error {
		current, err := tx.PendingRemoteSync()
		if err != nil {
			return err
		}
		remaining := slices.DeleteFunc(current, func(id string) bool {
			_, ok := synced[id]
			return ok
		})
		return tx.SetPendingRemoteSync(remaining)
	})
	if err != nil {
		return 0, err
	}
	return len(synced), nil
}

func (s *BookingService) publishBooking(ctx context.Context, booking *domain.Booking, remote RemoteStatus) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(booking)
	event.RemoteStatus = string(remote)
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		fmt.Printf("WARNING: Failed to publish booking_created event for booking %s: %v\n", booking.ID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			fmt.Printf("WARNING: Failed to publish notification for booking %s: %v\n", booking.ID, err)
		}
	}
}

func validate(input FinalizeInput) error {
	var problems []string
	if err := domain.ValidatePassengers(input.Passengers); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			problems = append(problems, verr.Problems...)
		}
	}
	if !input.PaymentMethod.Valid() {
		problems = append(problems, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	if input.TotalAmount <= 0 {
		problems = append(problems, "total amount must be positive")
	}
	if len(problems) > 0 {
		return domain.NewValidationError(problems...)
	}
	return nil
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

var _ BookingUseCase = (*BookingService)(nil)
