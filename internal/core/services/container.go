package services

import (
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. The account service comes first since every ledger service
// resolves accounts through it.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	account := NewAccountService(repos.AccountRepo)

	return &portssvc.ServiceContainer{
		Account:   account,
		Posting:   NewPostingService(repos.EntryRepo, account),
		Balance:   NewBalanceService(repos.EntryRepo, account),
		Statement: NewStatementService(repos.EntryRepo, account),
	}
}
