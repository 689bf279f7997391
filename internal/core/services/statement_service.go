package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDirectoryTimeout = 5 * time.Second
	defaultFetchConcurrency = 8
)

type statementService struct {
	BaseService
	accountRepo      portsrepo.AccountReader
	movementRepo     portsrepo.MovementReader
	directory        portssvc.CustomerDirectory
	directoryTimeout time.Duration
	fetchConcurrency int
}

// StatementServiceOption is a functional option for configuring the statement service
type StatementServiceOption func(*statementService)

// WithDirectoryTimeout bounds the customer name lookup.
func WithDirectoryTimeout(d time.Duration) StatementServiceOption {
	return func(s *statementService) {
		if d > 0 {
			s.directoryTimeout = d
		}
	}
}

// WithFetchConcurrency limits how many accounts are queried at once.
func WithFetchConcurrency(n int) StatementServiceOption {
	return func(s *statementService) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// WithStatementClock overrides the time used for placeholder rows without a creation date.
func WithStatementClock(clock func() time.Time) StatementServiceOption {
	return func(s *statementService) {
		s.clock = clock
	}
}

// NewStatementService creates a new statement service with the provided options
func NewStatementService(
	accountRepo portsrepo.AccountReader,
	movementRepo portsrepo.MovementReader,
	directory portssvc.CustomerDirectory,
	options ...StatementServiceOption,
) portssvc.StatementService {
	svc := &statementService{
		accountRepo:      accountRepo,
		movementRepo:     movementRepo,
		directory:        directory,
		directoryTimeout: defaultDirectoryTimeout,
		fetchConcurrency: defaultFetchConcurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatementService = (*statementService)(nil)

func (s *statementService) BuildStatement(ctx context.Context, customerID string, start, end time.Time) ([]domain.StatementRow, error) {
	if start.After(end) {
		return nil, apperrors.ErrInvalidDateRange
	}

	customerName := s.resolveCustomerName(ctx, customerID)

	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customer accounts", slog.String("customer_id", customerID))
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNoAccountsForCustomer
	}

	// Each slot belongs to one account so the merge order does not depend on scheduling
	perAccount := make([][]domain.Movement, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchConcurrency)
	for i := range accounts {
		i := i
		g.Go(func() error {
			movements, err := s.movementRepo.FindMovementsInRange(gctx, accounts[i].AccountID, start, end)
			if err != nil {
				return err
			}
			perAccount[i] = movements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch movements for statement", slog.String("customer_id", customerID))
		return nil, err
	}

	now := s.Now()
	rows := make([]domain.StatementRow, 0, len(accounts))
	for i, account := range accounts {
		rows = append(rows, domain.RowsForAccount(account, perAccount[i], customerName, now)...)
	}
	domain.SortStatementRows(rows)

	s.LogInfo(ctx, "Statement built",
		slog.String("customer_id", customerID),
		slog.Int("accounts", len(accounts)),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// resolveCustomerName never fails: any directory problem yields the sentinel name.
func (s *statementService) resolveCustomerName(ctx context.Context, customerID string) string {
	if s.directory == nil {
		return domain.UnavailableCustomerName
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.directoryTimeout)
	defer cancel()

	info, err := s.directory.GetCustomer(lookupCtx, customerID)
	if err != nil {
		s.LogWarn(ctx, "Customer directory lookup failed, using fallback name",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()))
		return domain.UnavailableCustomerName
	}
	if info == nil || strings.TrimSpace(info.Name) == "" {
		s.LogWarn(ctx, "Customer directory returned no name, using fallback name", slog.String("customer_id", customerID))
		return domain.UnavailableCustomerName
	}
	return info.Name
}
