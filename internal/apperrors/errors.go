package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit would take an account balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInactiveAccount indicates that a movement was posted against an inactive account.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrUpstreamUnavailable indicates that a collaborating service could not be reached
// or answered with an unusable response.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")

// ErrRenderFailure indicates that a statement could not be serialized.
var ErrRenderFailure = errors.New("failed to render statement")

var (
	ErrInvalidAmount         = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidKind           = fmt.Errorf("%w: movement kind must be DEBIT or CREDIT", ErrValidation)
	ErrInvalidDateRange      = fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	ErrNoAccountsForCustomer = fmt.Errorf("%w: customer has no accounts", ErrNotFound)
)

// Kind is the machine-checkable error category returned to API clients.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindInvalidAmount       Kind = "INVALID_AMOUNT"
	KindInvalidKind         Kind = "INVALID_KIND"
	KindInsufficientFunds   Kind = "INSUFFICIENT_FUNDS"
	KindInactiveAccount     Kind = "INACTIVE_ACCOUNT"
	KindConflict            Kind = "CONFLICT"
	KindNoAccounts          Kind = "NO_ACCOUNTS_FOR_CUSTOMER"
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	KindRenderFailure       Kind = "RENDER_FAILURE"
	KindInternal            Kind = "INTERNAL"
)

// KindOf classifies err. The most specific sentinel wins.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoAccountsForCustomer):
		return KindNoAccounts
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidAmount):
		return KindInvalidAmount
	case errors.Is(err, ErrInvalidKind):
		return KindInvalidKind
	case errors.Is(err, ErrValidation):
		return KindInvalidInput
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrInactiveAccount):
		return KindInactiveAccount
	case errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	case errors.Is(err, ErrRenderFailure):
		return KindRenderFailure
	default:
		return KindInternal
	}
}

// AppError carries an HTTP-ish status code alongside an infrastructure failure.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
