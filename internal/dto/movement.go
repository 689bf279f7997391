package dto

import (
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest posts a debit or credit against an account.
// Amount and kind are validated by the ledger so that callers get a specific error kind.
type CreateMovementRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Kind      string          `json:"kind" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

// UpdateMovementRequest is an administrative correction of a stored movement.
// It does not touch the account balance.
type UpdateMovementRequest struct {
	Kind             *string          `json:"kind"`
	Amount           *decimal.Decimal `json:"amount"`
	ResultingBalance *decimal.Decimal `json:"resultingBalance"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID       string              `json:"movementID"`
	AccountID        string              `json:"accountID"`
	MovementDate     time.Time           `json:"movementDate"`
	Kind             domain.MovementKind `json:"kind"`
	Amount           decimal.Decimal     `json:"amount"`
	ResultingBalance decimal.Decimal     `json:"resultingBalance"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:       m.MovementID,
		AccountID:        m.AccountID,
		MovementDate:     m.MovementDate,
		Kind:             m.Kind,
		Amount:           m.Amount,
		ResultingBalance: m.ResultingBalance,
		CreatedAt:        m.CreatedAt,
	}
}

// ToListMovementResponse converts a slice of domain.Movement to DTOs
func ToListMovementResponse(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}

// ListMovementsParams defines offset pagination for listing all movements.
type ListMovementsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// AccountMovementsParams defines token pagination for one account's movements.
type AccountMovementsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}
