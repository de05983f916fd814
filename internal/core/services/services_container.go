package services

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize workplace service first since other services depend on it
	container.Workplace = NewWorkplaceService(repos.WorkplaceRepo)

	workplaceAuthorizer := container.Workplace.(portssvc.WorkplaceAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuthorizer(workplaceAuthorizer),
	)
	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.AccountRepo,
		WithEntryAuthorizer(workplaceAuthorizer),
	)
	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.EntryRepo,
		WithReportingAuthorizer(workplaceAuthorizer),
	)
	container.User = NewUserService(repos.UserRepo)

	return container
}
