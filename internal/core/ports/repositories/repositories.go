package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	EntryRepo     EntryRepositoryFacade
	UserRepo      UserRepository
	WorkplaceRepo WorkplaceRepository
}
