package handlers

import (
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementDate(t *testing.T) {
	tests := []struct {
		in         string
		endOfRange bool
		want       time.Time
	}{
		{in: "2024-02-10", want: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{in: "2024-02-10", endOfRange: true, want: time.Date(2024, 2, 10, 23, 59, 59, 999999999, time.UTC)},
		{in: "2024-02-10T08:30:00", endOfRange: true, want: time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC)},
		{in: "2024-02-10T08:30:00-05:00", want: time.Date(2024, 2, 10, 13, 30, 0, 0, time.UTC)},
		{in: " 2024-02-10 ", want: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseStatementDate(tt.in, tt.endOfRange)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	_, err := parseStatementDate("10/02/2024", false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseStatementRange(t *testing.T) {
	_, _, err := parseStatementRange("2024-02-11", "2024-02-10")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	start, end, err := parseStatementRange("2024-02-10", "2024-02-10")
	require.NoError(t, err)
	assert.True(t, start.Before(end))
}
