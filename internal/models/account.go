package models

import (
	"github.com/shopspring/decimal"
)

// Account is the row layout of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	AccountNumber  string          `db:"account_number"`
	AccountType    string          `db:"account_type"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	CustomerID     string          `db:"customer_id"`
	AuditFields
}
