// Package memory is a process-local implementation of the repository ports.
// It is used by tests and by STORAGE_DRIVER=memory for local runs.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
)

// Store holds all tables. mu guards the maps; account locks serialize ledger
// units of work per account and are always taken before mu.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]domain.Account
	movements map[string]domain.Movement
	customers map[string]domain.Customer

	locks accountLocks
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]domain.Account),
		movements: make(map[string]domain.Movement),
		customers: make(map[string]domain.Customer),
		locks:     accountLocks{sems: make(map[string]*accountLock)},
	}
}

// NewRepositoryProvider exposes store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  &AccountRepository{store: store},
		MovementRepo: &MovementRepository{store: store},
		CustomerRepo: &CustomerRepository{store: store},
		UnitOfWork:   &UnitOfWork{store: store},
	}
}

func (s *Store) hasAccount(accountID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[accountID]
	return ok
}

// accountLocks hands out one binary semaphore per account id. An entry lives only
// while some caller holds or waits for it.
type accountLocks struct {
	mu   sync.Mutex
	sems map[string]*accountLock
}

type accountLock struct {
	sem  chan struct{}
	refs int
}

func (l *accountLocks) acquire(accountID string) *accountLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.sems[accountID]
	if !ok {
		e = &accountLock{sem: make(chan struct{}, 1)}
		l.sems[accountID] = e
	}
	e.refs++
	return e
}

func (l *accountLocks) release(accountID string, e *accountLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.sems, accountID)
	}
}

// lock blocks until the account is free or ctx is done.
func (l *accountLocks) lock(ctx context.Context, accountID string) error {
	e := l.acquire(accountID)
	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.release(accountID, e)
		return ctx.Err()
	}
}

func (l *accountLocks) unlock(accountID string) {
	l.mu.Lock()
	e := l.sems[accountID]
	l.mu.Unlock()
	<-e.sem
	l.release(accountID, e)
}

func (l *accountLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sems)
}
