package domain

import "time"

type TransactionKind string

const (
	TransactionCredit TransactionKind = "credit"
	TransactionDebit  TransactionKind = "debit"
)

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionKind `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Wallet is the ledger view: balance plus history, newest first.
type Wallet struct {
	Balance      int64         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}
