package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of operations available inside a ledger unit of work.
// Implementations must serialize units of work touching the same account.
type LedgerTx interface {
	// FindAccountForUpdate loads an account and holds its lock until the unit of work ends.
	FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// UpdateAccountBalance sets the current balance of a locked account.
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error

	// InsertMovement appends a movement.
	InsertMovement(ctx context.Context, movement domain.Movement) error
}

// UnitOfWork runs fn atomically: every write made through tx commits together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
