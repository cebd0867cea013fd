package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	EntryRepo   EntryRepositoryFacade
}
