package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/google/uuid"
)

type noopPublisher struct{}

func (noopPublisher) Publish(domain.CustomerEvent) {}

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	publisher    portssvc.EventPublisher
}

// CustomerServiceOption is a functional option for configuring the customer service
type CustomerServiceOption func(*customerService)

// WithEventPublisher sets where customer lifecycle events are sent.
func WithEventPublisher(publisher portssvc.EventPublisher) CustomerServiceOption {
	return func(s *customerService) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithCustomerClock overrides the time source used for audit timestamps and events.
func WithCustomerClock(clock func() time.Time) CustomerServiceOption {
	return func(s *customerService) {
		s.clock = clock
	}
}

// NewCustomerService creates a new customer service with the provided options
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, options ...CustomerServiceOption) portssvc.CustomerSvcFacade {
	svc := &customerService{customerRepo: repo, publisher: noopPublisher{}}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	identification := strings.TrimSpace(req.Identification)
	if name == "" || identification == "" {
		return nil, fmt.Errorf("%w: name and identification are required", apperrors.ErrValidation)
	}

	now := s.Now()
	customer := domain.Customer{
		CustomerID:     uuid.NewString(),
		Name:           name,
		Identification: identification,
		Gender:         strings.TrimSpace(req.Gender),
		Address:        strings.TrimSpace(req.Address),
		Phone:          strings.TrimSpace(req.Phone),
		Active:         true,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save customer", slog.String("identification", identification))
		}
		return nil, err
	}

	s.publisher.Publish(domain.NewCustomerEvent(domain.CustomerCreated, customer, now))
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListActiveCustomers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		customer.Name = name
	}
	if req.Gender != nil {
		customer.Gender = strings.TrimSpace(*req.Gender)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}
	now := s.Now()
	customer.UpdatedAt = now

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}

	s.publisher.Publish(domain.NewCustomerEvent(domain.CustomerUpdated, *customer, now))
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		}
		return err
	}

	s.publisher.Publish(domain.NewCustomerEvent(domain.CustomerDeleted, *customer, s.Now()))
	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}
