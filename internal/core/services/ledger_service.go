package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	movementRepo portsrepo.MovementRepositoryFacade
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerClock overrides the time source used for movement dates.
func WithLedgerClock(clock func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// NewLedgerService creates the service that owns account balances.
func NewLedgerService(uow portsrepo.UnitOfWork, movementRepo portsrepo.MovementRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{uow: uow, movementRepo: movementRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostMovement validates input, then locks the account, checks it is active and has
// sufficient funds, and writes the new balance and the movement in one unit of work.
func (s *ledgerService) PostMovement(ctx context.Context, accountID string, kind domain.MovementKind, amount decimal.Decimal) (*domain.Movement, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !domain.FitsMoney(amount) {
		return nil, fmt.Errorf("%w: at most %d decimal places and %d integer digits",
			apperrors.ErrInvalidAmount, domain.MoneyScale, domain.MoneyIntegerDigits)
	}
	if !kind.Valid() {
		return nil, apperrors.ErrInvalidKind
	}

	var posted domain.Movement
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		account, err := tx.FindAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.Active {
			return apperrors.ErrInactiveAccount
		}

		newBalance, err := domain.ApplyMovement(account.CurrentBalance, kind, amount)
		if err != nil {
			return err
		}

		at := domain.NextMovementTime(s.Now(), account.UpdatedAt)
		if err := tx.UpdateAccountBalance(ctx, accountID, newBalance, at); err != nil {
			return err
		}

		posted = domain.Movement{
			MovementID:       uuid.NewString(),
			AccountID:        accountID,
			MovementDate:     at,
			Kind:             kind,
			Amount:           amount,
			ResultingBalance: newBalance,
			CreatedAt:        at,
		}
		return tx.InsertMovement(ctx, posted)
	})
	if err != nil {
		if isExpectedLedgerError(err) {
			s.LogInfo(ctx, "Movement rejected",
				slog.String("account_id", accountID),
				slog.String("kind", string(kind)),
				slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to post movement", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Movement posted",
		slog.String("movement_id", posted.MovementID),
		slog.String("account_id", accountID),
		slog.String("kind", string(kind)),
		slog.String("amount", amount.String()),
		slog.String("resulting_balance", posted.ResultingBalance.String()))
	return &posted, nil
}

func isExpectedLedgerError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrInactiveAccount) ||
		errors.Is(err, apperrors.ErrInsufficientFunds) ||
		errors.Is(err, apperrors.ErrValidation)
}

func (s *ledgerService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	m, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find movement", slog.String("movement_id", movementID))
		}
		return nil, err
	}
	return m, nil
}

func (s *ledgerService) ListMovements(ctx context.Context, limit int, offset int) ([]domain.Movement, error) {
	movements, err := s.movementRepo.ListMovements(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements")
		return nil, err
	}
	return movements, nil
}

// ListMovementsByAccount returns one page of an account's movements and a token for the next.
func (s *ledgerService) ListMovementsByAccount(ctx context.Context, accountID string, params dto.AccountMovementsParams) (*dto.ListMovementsResponse, error) {
	var cursor *portsrepo.MovementCursor
	if params.NextToken != "" {
		date, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &portsrepo.MovementCursor{MovementDate: date, MovementID: id}
	}

	// Fetch one extra row to learn whether another page exists
	movements, err := s.movementRepo.ListMovementsByAccount(ctx, accountID, params.Limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account movements", slog.String("account_id", accountID))
		return nil, err
	}

	resp := &dto.ListMovementsResponse{}
	if len(movements) > params.Limit {
		movements = movements[:params.Limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeToken(last.MovementDate, last.MovementID)
		resp.NextToken = &token
	}
	resp.Movements = dto.ToListMovementResponse(movements)
	return resp, nil
}

// UpdateMovement is an administrative correction. It does not adjust the account balance.
func (s *ledgerService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error) {
	m, err := s.GetMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}

	if req.Kind != nil {
		kind, err := domain.ParseMovementKind(*req.Kind)
		if err != nil {
			return nil, err
		}
		m.Kind = kind
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		m.Amount = *req.Amount
	}
	if req.ResultingBalance != nil {
		m.ResultingBalance = *req.ResultingBalance
	}

	if err := s.movementRepo.UpdateMovement(ctx, *m); err != nil {
		s.LogError(ctx, err, "Failed to update movement", slog.String("movement_id", movementID))
		return nil, err
	}
	s.LogWarn(ctx, "Movement corrected administratively; account balance not adjusted",
		slog.String("movement_id", movementID),
		slog.String("account_id", m.AccountID))
	return m, nil
}

func (s *ledgerService) DeleteMovement(ctx context.Context, movementID string) error {
	if err := s.movementRepo.DeleteMovement(ctx, movementID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete movement", slog.String("movement_id", movementID))
		}
		return err
	}
	s.LogWarn(ctx, "Movement deleted administratively; account balance not adjusted", slog.String("movement_id", movementID))
	return nil
}
