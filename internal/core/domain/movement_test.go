package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		kind    domain.MovementKind
		amount  string
		want    string
		wantErr error
	}{
		{name: "credit adds", balance: "100", kind: domain.Credit, amount: "50.25", want: "150.25"},
		{name: "debit subtracts", balance: "100", kind: domain.Debit, amount: "40", want: "60"},
		{name: "debit to exactly zero", balance: "100", kind: domain.Debit, amount: "100", want: "0"},
		{name: "debit overdraft", balance: "100", kind: domain.Debit, amount: "100.01", wantErr: apperrors.ErrInsufficientFunds},
		{name: "zero amount", balance: "100", kind: domain.Credit, amount: "0", wantErr: apperrors.ErrInvalidAmount},
		{name: "negative amount", balance: "100", kind: domain.Debit, amount: "-5", wantErr: apperrors.ErrInvalidAmount},
		{name: "five decimals", balance: "100", kind: domain.Debit, amount: "0.00005", wantErr: apperrors.ErrInvalidAmount},
		{name: "trailing zeros fit", balance: "100", kind: domain.Credit, amount: "0.500000", want: "100.5"},
		{name: "credit past column range", balance: "999999999999999", kind: domain.Credit, amount: "1", wantErr: apperrors.ErrInvalidAmount},
		{name: "unknown kind", balance: "100", kind: domain.MovementKind("TRANSFER"), amount: "5", wantErr: apperrors.ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ApplyMovement(decimal.RequireFromString(tt.balance), tt.kind, decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.Equal(decimal.RequireFromString(tt.balance)), "balance must be unchanged on error")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseMovementKind(t *testing.T) {
	k, err := domain.ParseMovementKind("debit")
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, k)

	k, err = domain.ParseMovementKind(" Credit ")
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, k)

	_, err = domain.ParseMovementKind("refund")
	assert.ErrorIs(t, err, apperrors.ErrInvalidKind)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMovement_OpeningBalance(t *testing.T) {
	credit := domain.Movement{Kind: domain.Credit, Amount: decimal.NewFromInt(100), ResultingBalance: decimal.NewFromInt(600)}
	debit := domain.Movement{Kind: domain.Debit, Amount: decimal.NewFromInt(40), ResultingBalance: decimal.NewFromInt(560)}

	assert.True(t, credit.OpeningBalance().Equal(decimal.NewFromInt(500)))
	assert.True(t, debit.OpeningBalance().Equal(decimal.NewFromInt(600)))
}

func TestNextMovementTime(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, base, domain.NextMovementTime(base, time.Time{}))
	assert.Equal(t, base, domain.NextMovementTime(base, base.Add(-time.Second)))
	assert.Equal(t, base.Add(time.Microsecond), domain.NextMovementTime(base, base))
	assert.Equal(t, base.Add(time.Second+time.Microsecond), domain.NextMovementTime(base, base.Add(time.Second)))
	assert.Equal(t, base, domain.NextMovementTime(base.Add(500*time.Nanosecond), time.Time{}))
}
