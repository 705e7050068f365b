package wallet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/store"
)

type WalletUseCase interface {
	Wallet(ctx context.Context) (domain.Wallet, error)
	Balance(ctx context.Context) (int64, error)
	Credit(ctx context.Context, amount int64) (*domain.Transaction, int64, error)
	CreditRaw(ctx context.Context, raw string) (*domain.Transaction, int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type WalletService struct {
	store    *store.Store
	producer Producer
	topic    string
	now      func() time.Time
}

type WalletServiceOption func(*WalletService)

func WithProducer(producer Producer, topic string) WalletServiceOption {
	return func(s *WalletService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithClock(now func() time.Time) WalletServiceOption {
	return func(s *WalletService) {
		s.now = now
	}
}

func NewWalletService(st *store.Store, opts ...WalletServiceOption) *WalletService {
	s := &WalletService{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WalletService) Wallet(ctx context.Context) (domain.Wallet, error) {
	return s.store.Wallet()
}

func (s *WalletService) Balance(ctx context.Context) (int64, error) {
	w, err := s.store.Wallet()
	return w.Balance, err
}

// ParseAmount accepts a positive whole number only. Anything else, including
// "-5", "0", "12.5" and "abc", is an InvalidAmountError.
func ParseAmount(raw string) (int64, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || amount <= 0 {
		return 0, &domain.InvalidAmountError{Input: raw}
	}
	return amount, nil
}

func (s *WalletService) CreditRaw(ctx context.Context, raw string) (*domain.Transaction, int64, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return nil, 0, err
	}
	return s.Credit(ctx, amount)
}

func (s *WalletService) Credit(ctx context.Context, amount int64) (*domain.Transaction, int64, error) {
	if amount <= 0 {
		return nil, 0, &domain.InvalidAmountError{Input: strconv.FormatInt(amount, 10)}
	}
	txn := NewTransaction(domain.TransactionCredit, amount, CreditDescription, s.now())

	var balance int64
	err := s.store.Update(func(tx *store.Tx) error {
		var err error
		balance, err = Credit(tx, txn)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	s.publish(ctx, txn, balance)
	return &txn, balance, nil
}

// Publish announces a ledger movement committed in another store transaction,
// such as the debit written together with a wallet-paid booking.
func (s *WalletService) Publish(ctx context.Context, txn domain.Transaction, balance int64) {
	s.publish(ctx, txn, balance)
}

func (s *WalletService) publish(ctx context.Context, txn domain.Transaction, balance int64) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, txn.ID, kafka.NewWalletEvent(txn, balance)); err != nil {
		fmt.Printf("WARNING: Failed to publish wallet event for transaction %s: %v\n", txn.ID, err)
	}
}

func NewTransaction(kind domain.TransactionKind, amount int64, description string, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:          "TX-" + shortID(),
		Type:        kind,
		Amount:      amount,
		Description: description,
		Date:        at,
	}
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

var _ WalletUseCase = (*WalletService)(nil)
