package services

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/dto"
)

// CustomerSvcFacade manages customer records.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerDirectory resolves a customer's display identity.
// Implementations may call remote services and may fail.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.CustomerInfo, error)
}

// EventPublisher accepts customer events for asynchronous delivery.
// Publish must not block and must not report delivery failures to the caller.
type EventPublisher interface {
	Publish(event domain.CustomerEvent)
}
