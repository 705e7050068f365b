// Package store is the local key-value store holding the wallet and the
// booking list. Values are written wholesale under fixed keys, as the web
// client kept them in browser storage:
//
//	walletBalance       stringified integer
//	myBookings          JSON array of bookings, oldest first
//	walletTransactions  JSON array of transactions, newest first
//	pendingRemoteSync   JSON array of booking ids not yet in the remote store
//
// BoltDB allows a single writer, so every Update is serialized and a booking
// plus its wallet debit commit together or not at all.
package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

const bucketName = "local"

const (
	KeyWalletBalance      = "walletBalance"
	KeyBookings           = "myBookings"
	KeyWalletTransactions = "walletTransactions"
	KeyPendingRemoteSync  = "pendingRemoteSync"
)

type Store struct {
	db             *bolt.DB
	initialBalance int64
}

// New opens (or creates) the database file. initialBalance is reported until
// the first wallet write.
func New(path string, initialBalance int64) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db, initialBalance: initialBalance}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(*Tx) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&Tx{bucket: tx.Bucket([]byte(bucketName)), initialBalance: s.initialBalance})
	})
}

// Update runs fn in a read-write transaction. Any error from fn rolls back
// every write made through the Tx.
func (s *Store) Update(fn func(*Tx) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&Tx{bucket: tx.Bucket([]byte(bucketName)), initialBalance: s.initialBalance, writable: true})
	})
}

func (s *Store) Wallet() (domain.Wallet, error) {
	var w domain.Wallet
	err := s.View(func(tx *Tx) error {
		var err error
		if w.Balance, err = tx.Balance(); err != nil {
			return err
		}
		w.Transactions, err = tx.Transactions()
		return err
	})
	return w, err
}

func (s *Store) Bookings() ([]domain.Booking, error) {
	var out []domain.Booking
	err := s.View(func(tx *Tx) error {
		var err error
		out, err = tx.Bookings()
		return err
	})
	return out, err
}

// Booking returns *domain.NotFoundError when id is not stored locally.
func (s *Store) Booking(id string) (*domain.Booking, error) {
	bookings, err := s.Bookings()
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, &domain.NotFoundError{Kind: "booking", ID: id}
}

// Tx exposes the keys of one bolt transaction.
type Tx struct {
	bucket         *bolt.Bucket
	initialBalance int64
	writable       bool
}

func (t *Tx) Balance() (int64, error) {
	raw := t.bucket.Get([]byte(KeyWalletBalance))
	if raw == nil {
		return t.initialBalance, nil
	}
	balance, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", KeyWalletBalance, err)
	}
	return balance, nil
}

func (t *Tx) SetBalance(balance int64) error {
	return t.put(KeyWalletBalance, []byte(strconv.FormatInt(balance, 10)))
}

func (t *Tx) Transactions() ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	return out, t.getJSON(KeyWalletTransactions, &out)
}

// PrependTransaction keeps the history newest first.
func (t *Tx) PrependTransaction(txn domain.Transaction) error {
	list, err := t.Transactions()
	if err != nil {
		return err
	}
	return t.putJSON(KeyWalletTransactions, append([]domain.Transaction{txn}, list...))
}

func (t *Tx) Bookings() ([]domain.Booking, error) {
	out := []domain.Booking{}
	return out, t.getJSON(KeyBookings, &out)
}

func (t *Tx) AppendBooking(b domain.Booking) error {
	list, err := t.Bookings()
	if err != nil {
		return err
	}
	return t.putJSON(KeyBookings, append(list, b))
}

func (t *Tx) PendingRemoteSync() ([]string, error) {
	out := []string{}
	return out, t.getJSON(KeyPendingRemoteSync, &out)
}

func (t *Tx) SetPendingRemoteSync(ids []string) error {
	if len(ids) == 0 {
		return t.bucket.Delete([]byte(KeyPendingRemoteSync))
	}
	return t.putJSON(KeyPendingRemoteSync, ids)
}

func (t *Tx) getJSON(key string, v any) error {
	raw := t.bucket.Get([]byte(key))
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (t *Tx) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return t.put(key, data)
}

func (t *Tx) put(key string, value []byte) error {
	if !t.writable {
		return fmt.Errorf("write %s: read-only transaction", key)
	}
	return t.bucket.Put([]byte(key), value)
}
