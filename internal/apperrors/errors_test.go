package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want apperrors.Kind
	}{
		{err: nil, want: ""},
		{err: apperrors.ErrNoAccountsForCustomer, want: apperrors.KindNoAccounts},
		{err: fmt.Errorf("account a1: %w", apperrors.ErrNotFound), want: apperrors.KindNotFound},
		{err: apperrors.ErrInvalidAmount, want: apperrors.KindInvalidAmount},
		{err: apperrors.ErrInvalidKind, want: apperrors.KindInvalidKind},
		{err: apperrors.ErrInvalidDateRange, want: apperrors.KindInvalidInput},
		{err: apperrors.ErrInsufficientFunds, want: apperrors.KindInsufficientFunds},
		{err: apperrors.ErrInactiveAccount, want: apperrors.KindInactiveAccount},
		{err: apperrors.ErrDuplicate, want: apperrors.KindConflict},
		{err: apperrors.ErrUpstreamUnavailable, want: apperrors.KindUpstreamUnavailable},
		{err: apperrors.ErrRenderFailure, want: apperrors.KindRenderFailure},
		{err: errors.New("boom"), want: apperrors.KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apperrors.KindOf(tt.err), "%v", tt.err)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := apperrors.NewAppError(http.StatusServiceUnavailable, "database unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "database unavailable: timeout", err.Error())
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
