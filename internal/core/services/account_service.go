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
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the time source used for audit timestamps.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	number := strings.TrimSpace(req.AccountNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customer id is required", apperrors.ErrValidation)
	}
	if err := checkInitialBalance(req.InitialBalance); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  number,
		AccountType:    strings.TrimSpace(req.AccountType),
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		Active:         active,
		CustomerID:     req.CustomerID,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account in repository", slog.String("account_number", number))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("customer_id", account.CustomerID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID in repository", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customer accounts", slog.String("customer_id", customerID))
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount applies administrative edits. The current balance is deliberately not
// recomputed when the initial balance changes.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountType != nil {
		account.AccountType = strings.TrimSpace(*req.AccountType)
	}
	if req.Active != nil {
		account.Active = *req.Active
	}
	if req.InitialBalance != nil {
		if err := checkInitialBalance(*req.InitialBalance); err != nil {
			return nil, err
		}
		account.InitialBalance = *req.InitialBalance
	}
	account.UpdatedAt = s.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func checkInitialBalance(balance decimal.Decimal) error {
	if !balance.IsPositive() {
		return fmt.Errorf("%w: initial balance must be greater than zero", apperrors.ErrValidation)
	}
	if !domain.FitsMoney(balance) {
		return fmt.Errorf("%w: initial balance allows at most %d decimal places and %d integer digits",
			apperrors.ErrValidation, domain.MoneyScale, domain.MoneyIntegerDigits)
	}
	return nil
}
