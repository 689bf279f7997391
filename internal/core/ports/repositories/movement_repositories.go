package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// MovementCursor marks the last movement of a page when listing newest first.
type MovementCursor struct {
	MovementDate time.Time
	MovementID   string
}

// MovementReader defines read operations for movement data
type MovementReader interface {
	// FindMovementByID retrieves a specific movement.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovements retrieves a paginated list of all movements, newest first.
	ListMovements(ctx context.Context, limit int, offset int) ([]domain.Movement, error)

	// ListMovementsByAccount pages through an account's movements newest first,
	// starting after the cursor when one is given.
	ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *MovementCursor) ([]domain.Movement, error)

	// FindMovementsInRange returns the account's movements with from <= movementDate <= to.
	// The order of the result is unspecified.
	FindMovementsInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error)
}

// MovementWriter holds administrative corrections. Normal postings go through UnitOfWork.
type MovementWriter interface {
	UpdateMovement(ctx context.Context, movement domain.Movement) error
	DeleteMovement(ctx context.Context, movementID string) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
