package services

import (
	"github.com/SscSPs/bank_backoffice_app/internal/core/ports"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher ports.LedgerEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo)

	container.Accounting = NewAccountingService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.CustomerRepo,
		WithEventPublisher(publisher),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CustomerSvcFacade   = (*customerService)(nil)
	_ portssvc.AccountingSvcFacade = (*accountingService)(nil)
)
