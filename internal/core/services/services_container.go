package services

import (
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/platform/config"
	"github.com/SscSPs/account_ledger/internal/report"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// directory and publisher may be nil; statements then use the fallback customer name and
// customer events are discarded.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	directory portssvc.CustomerDirectory,
	publisher portssvc.EventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.UnitOfWork, repos.MovementRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, WithEventPublisher(publisher))

	statementOpts := []StatementServiceOption{}
	if cfg != nil {
		statementOpts = append(statementOpts, WithDirectoryTimeout(cfg.CustomerLookupTimeout))
	}
	container.Statement = NewStatementService(repos.AccountRepo, repos.MovementRepo, directory, statementOpts...)
	container.Renderer = report.NewRenderer()

	return container
}
