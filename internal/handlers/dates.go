package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
)

const dateOnlyLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// parseStatementDate accepts RFC3339, a local date-time without zone, or a bare date.
// A bare date used as the end of a range covers the whole day.
func parseStatementDate(value string, endOfRange bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		if endOfRange {
			return t.Add(24*time.Hour - time.Nanosecond), nil
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date '%s', expected YYYY-MM-DD or RFC3339", apperrors.ErrValidation, value)
}

// parseStatementRange parses both ends and checks their order.
func parseStatementRange(start, end string) (time.Time, time.Time, error) {
	from, err := parseStatementDate(start, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseStatementDate(end, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return from, to, nil
}
