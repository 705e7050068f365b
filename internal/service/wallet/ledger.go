package wallet

import (
	"math"
	"strconv"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/store"
)

const CreditDescription = "Added money to wallet"

// DebitDescription is the ledger line for a wallet-paid booking.
func DebitDescription(from, to string) string {
	return "Flight booking: " + from + " to " + to
}

// Credit adds txn.Amount inside an open store transaction and records txn
// at the head of the history. It returns the new balance. A credit that would
// overflow the balance is rejected and leaves the ledger untouched.
func Credit(tx *store.Tx, txn domain.Transaction) (int64, error) {
	balance, err := tx.Balance()
	if err != nil {
		return 0, err
	}
	if txn.Amount > math.MaxInt64-balance {
		return 0, &domain.InvalidAmountError{
			Input:  strconv.FormatInt(txn.Amount, 10),
			Reason: "top-up would overflow the wallet balance",
		}
	}
	balance += txn.Amount
	if err := tx.SetBalance(balance); err != nil {
		return 0, err
	}
	return balance, tx.PrependTransaction(txn)
}

// Debit refuses to take the balance below zero.
func Debit(tx *store.Tx, txn domain.Transaction) (int64, error) {
	balance, err := tx.Balance()
	if err != nil {
		return 0, err
	}
	if balance < txn.Amount {
		return 0, &domain.InsufficientBalanceError{Balance: balance, Required: txn.Amount}
	}
	balance -= txn.Amount
	if err := tx.SetBalance(balance); err != nil {
		return 0, err
	}
	return balance, tx.PrependTransaction(txn)
}
