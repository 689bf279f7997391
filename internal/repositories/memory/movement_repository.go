package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
)

type MovementRepository struct {
	store *Store
}

var _ portsrepo.MovementRepositoryFacade = (*MovementRepository)(nil)

func (r *MovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movements[movementID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (r *MovementRepository) ListMovements(ctx context.Context, limit int, offset int) ([]domain.Movement, error) {
	all := r.newestFirst(func(domain.Movement) bool { return true })
	return page(all, limit, offset), nil
}

func (r *MovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.MovementCursor) ([]domain.Movement, error) {
	all := r.newestFirst(func(m domain.Movement) bool {
		if m.AccountID != accountID {
			return false
		}
		if after == nil {
			return true
		}
		if m.MovementDate.Equal(after.MovementDate) {
			return m.MovementID < after.MovementID
		}
		return m.MovementDate.Before(after.MovementDate)
	})
	return page(all, limit, 0), nil
}

// FindMovementsInRange returns matches in map order; callers sort.
func (r *MovementRepository) FindMovementsInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Movement, 0)
	for _, m := range s.movements {
		if m.AccountID == accountID && !m.MovementDate.Before(from) && !m.MovementDate.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MovementRepository) newestFirst(match func(domain.Movement) bool) []domain.Movement {
	s := r.store
	s.mu.RLock()
	out := make([]domain.Movement, 0)
	for _, m := range s.movements {
		if match(m) {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.After(out[j].MovementDate)
		}
		return out[i].MovementID > out[j].MovementID
	})
	return out
}

func (r *MovementRepository) UpdateMovement(ctx context.Context, movement domain.Movement) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.movements[movement.MovementID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Kind = movement.Kind
	stored.Amount = movement.Amount
	stored.ResultingBalance = movement.ResultingBalance
	s.movements[movement.MovementID] = stored
	return nil
}

func (r *MovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movements[movementID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.movements, movementID)
	return nil
}
