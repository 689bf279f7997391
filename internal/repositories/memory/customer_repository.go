package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
)

type CustomerRepository struct {
	store *Store
}

var _ portsrepo.CustomerRepositoryFacade = (*CustomerRepository)(nil)

func (r *CustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if existing.Identification == customer.Identification {
			return fmt.Errorf("%w: customer with identification %s already exists", apperrors.ErrDuplicate, customer.Identification)
		}
	}
	if _, exists := s.customers[customer.CustomerID]; exists {
		return fmt.Errorf("%w: customer %s already exists", apperrors.ErrDuplicate, customer.CustomerID)
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (r *CustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) ListActiveCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	out := make([]domain.Customer, 0)
	for _, c := range s.customers {
		if c.Active {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return page(out, limit, offset), nil
}

func (r *CustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.customers[customer.CustomerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	// identification and creation time are immutable
	customer.Identification = stored.Identification
	customer.CreatedAt = stored.CreatedAt
	s.customers[customer.CustomerID] = customer
	return nil
}

func (r *CustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.customers, customerID)
	return nil
}
