package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
)

type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, existing := range s.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (r *AccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.AccountNumber == accountNumber {
			found := acc
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *AccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	all := r.collect(func(domain.Account) bool { return true })
	return page(all, limit, offset), nil
}

func (r *AccountRepository) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	return r.collect(func(a domain.Account) bool { return a.CustomerID == customerID }), nil
}

// collect returns matching accounts ordered by creation time then id.
func (r *AccountRepository) collect(match func(domain.Account) bool) []domain.Account {
	s := r.store
	s.mu.RLock()
	out := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if match(acc) {
			out = append(out, acc)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out
}

// UpdateAccount writes type, status and initial balance only.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.AccountType = account.AccountType
	stored.Active = account.Active
	stored.InitialBalance = account.InitialBalance
	stored.UpdatedAt = account.UpdatedAt
	s.accounts[account.AccountID] = stored
	return nil
}

// DeleteAccount waits for in-flight postings on the account, then removes it and its movements.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	s := r.store
	if err := s.locks.lock(ctx, accountID); err != nil {
		return err
	}
	defer s.locks.unlock(accountID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.accounts, accountID)
	for id, m := range s.movements {
		if m.AccountID == accountID {
			delete(s.movements, id)
		}
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
