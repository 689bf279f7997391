package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind mirrors the CHECK constraint on movements.kind.
type MovementKind string

const (
	Debit  MovementKind = "DEBIT"
	Credit MovementKind = "CREDIT"
)

// Movement is the row layout of the movements table.
type Movement struct {
	MovementID       string          `db:"movement_id"`
	AccountID        string          `db:"account_id"`
	MovementDate     time.Time       `db:"movement_date"`
	Kind             MovementKind    `db:"kind"`
	Amount           decimal.Decimal `db:"amount"`
	ResultingBalance decimal.Decimal `db:"resulting_balance"`
	CreatedAt        time.Time       `db:"created_at"`
}
