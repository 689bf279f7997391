package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MovementKind indicates whether a movement takes money out of or puts money into an account.
type MovementKind string

const (
	Debit  MovementKind = "DEBIT"
	Credit MovementKind = "CREDIT"
)

// Valid reports whether k is one of the known kinds.
func (k MovementKind) Valid() bool {
	return k == Debit || k == Credit
}

// Label is the human readable name used on statements.
func (k MovementKind) Label() string {
	switch k {
	case Debit:
		return "Debit"
	case Credit:
		return "Credit"
	default:
		return string(k)
	}
}

// ParseMovementKind accepts DEBIT/CREDIT in any letter case.
func ParseMovementKind(s string) (MovementKind, error) {
	k := MovementKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", apperrors.ErrInvalidKind
	}
	return k, nil
}

// Movement is one committed change to an account balance.
type Movement struct {
	MovementID       string          `json:"movementID"`
	AccountID        string          `json:"accountID"`
	MovementDate     time.Time       `json:"movementDate"`
	Kind             MovementKind    `json:"kind"`
	Amount           decimal.Decimal `json:"amount"` // Always positive; Kind carries the sign
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// SignedAmount is the movement's effect on the balance.
func (m Movement) SignedAmount() decimal.Decimal {
	if m.Kind == Debit {
		return m.Amount.Neg()
	}
	return m.Amount
}

// OpeningBalance recovers the balance immediately before the movement was applied.
func (m Movement) OpeningBalance() decimal.Decimal {
	return m.ResultingBalance.Sub(m.SignedAmount())
}

// ApplyMovement returns the balance after applying amount of the given kind.
// A debit that would leave the balance negative fails with ErrInsufficientFunds.
// Amounts and resulting balances must fit the stored money precision.
func ApplyMovement(balance decimal.Decimal, kind MovementKind, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() || !FitsMoney(amount) {
		return balance, apperrors.ErrInvalidAmount
	}
	switch kind {
	case Credit:
		next := balance.Add(amount)
		if !FitsMoney(next) {
			return balance, apperrors.ErrInvalidAmount
		}
		return next, nil
	case Debit:
		next := balance.Sub(amount)
		if next.IsNegative() {
			return balance, apperrors.ErrInsufficientFunds
		}
		return next, nil
	default:
		return balance, apperrors.ErrInvalidKind
	}
}

// NextMovementTime keeps movement dates strictly increasing per account.
// Timestamps are truncated to the microsecond resolution of the store.
func NextMovementTime(now, last time.Time) time.Time {
	now = now.UTC().Truncate(time.Microsecond)
	if !last.IsZero() && !now.After(last) {
		return last.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now
}
