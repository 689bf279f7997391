package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

var errAccountNotLocked = errors.New("account was not locked in this unit of work")

// UnitOfWork stages ledger writes and applies them in one step on commit.
// Account locks are held from FindAccountForUpdate until the unit of work ends.
type UnitOfWork struct {
	store *Store
}

var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx := &memTx{
		store:    u.store,
		held:     make(map[string]bool),
		balances: make(map[string]stagedBalance),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

type stagedBalance struct {
	balance decimal.Decimal
	at      time.Time
}

type memTx struct {
	store     *Store
	held      map[string]bool
	order     []string
	balances  map[string]stagedBalance
	movements []domain.Movement
}

func (t *memTx) FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if !t.held[accountID] {
		if !t.store.hasAccount(accountID) {
			return nil, apperrors.ErrNotFound
		}
		if err := t.store.locks.lock(ctx, accountID); err != nil {
			return nil, err
		}
		t.held[accountID] = true
		t.order = append(t.order, accountID)
	}

	t.store.mu.RLock()
	acc, ok := t.store.accounts[accountID]
	t.store.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if staged, ok := t.balances[accountID]; ok {
		acc.CurrentBalance = staged.balance
		acc.UpdatedAt = staged.at
	}
	return &acc, nil
}

func (t *memTx) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	if !t.held[accountID] {
		return fmt.Errorf("update balance of %s: %w", accountID, errAccountNotLocked)
	}
	t.balances[accountID] = stagedBalance{balance: balance, at: now}
	return nil
}

func (t *memTx) InsertMovement(ctx context.Context, movement domain.Movement) error {
	if !t.held[movement.AccountID] {
		return fmt.Errorf("insert movement for %s: %w", movement.AccountID, errAccountNotLocked)
	}
	t.movements = append(t.movements, movement)
	return nil
}

// commit validates every staged write before applying any of them.
func (t *memTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for accountID := range t.balances {
		if _, ok := s.accounts[accountID]; !ok {
			return apperrors.ErrNotFound
		}
	}
	for _, m := range t.movements {
		if _, exists := s.movements[m.MovementID]; exists {
			return fmt.Errorf("%w: movement %s already exists", apperrors.ErrDuplicate, m.MovementID)
		}
	}

	for accountID, staged := range t.balances {
		acc := s.accounts[accountID]
		acc.CurrentBalance = staged.balance
		acc.UpdatedAt = staged.at
		s.accounts[accountID] = acc
	}
	for _, m := range t.movements {
		s.movements[m.MovementID] = m
	}
	return nil
}

func (t *memTx) release() {
	for i := len(t.order) - 1; i >= 0; i-- {
		t.store.locks.unlock(t.order[i])
	}
	t.order = nil
	t.held = nil
}
