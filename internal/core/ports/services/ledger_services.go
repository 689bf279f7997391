package services

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerPosterSvc is the only way to change an account's current balance.
type LedgerPosterSvc interface {
	// PostMovement atomically applies a debit or credit to an account and records it.
	PostMovement(ctx context.Context, accountID string, kind domain.MovementKind, amount decimal.Decimal) (*domain.Movement, error)
}

// MovementReaderSvc defines read operations for movements
type MovementReaderSvc interface {
	GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)
	ListMovements(ctx context.Context, limit int, offset int) ([]domain.Movement, error)

	// ListMovementsByAccount pages through an account's movements newest first.
	ListMovementsByAccount(ctx context.Context, accountID string, params dto.AccountMovementsParams) (*dto.ListMovementsResponse, error)
}

// MovementAdminSvc holds corrections that bypass the balance invariant.
type MovementAdminSvc interface {
	UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error)
	DeleteMovement(ctx context.Context, movementID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerPosterSvc
	MovementReaderSvc
	MovementAdminSvc
}
