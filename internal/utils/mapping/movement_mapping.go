package mapping

import (
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:       d.MovementID,
		AccountID:        d.AccountID,
		MovementDate:     d.MovementDate,
		Kind:             models.MovementKind(d.Kind),
		Amount:           d.Amount,
		ResultingBalance: d.ResultingBalance,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:       m.MovementID,
		AccountID:        m.AccountID,
		MovementDate:     m.MovementDate,
		Kind:             domain.MovementKind(m.Kind),
		Amount:           m.Amount,
		ResultingBalance: m.ResultingBalance,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainMovementSlice converts model Movements to domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
