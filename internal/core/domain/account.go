package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a customer-owned balance holder.
// CurrentBalance is only ever changed by the ledger when a movement is posted.
type Account struct {
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"` // Unique, immutable after creation
	AccountType    string          `json:"accountType"`   // Free-form, e.g. "Savings", "Checking"
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Active         bool            `json:"active"`
	CustomerID     string          `json:"customerID"`
	AuditFields
}

// OpeningBalance returns the balance an account started with, falling back to the
// current balance when no initial balance was recorded.
func (a Account) OpeningBalance() decimal.Decimal {
	if a.InitialBalance.IsZero() {
		return a.CurrentBalance
	}
	return a.InitialBalance
}
