package repositories

import (
	"context"

	"github.com/finbook/ledger-service/internal/core/domain"
)

// ListAccountsFilter narrows an account listing. Nil fields match everything.
type ListAccountsFilter struct {
	AccountType  *domain.AccountType
	CurrencyCode *string
}

// AccountReader defines read operations for account data. Every lookup is
// tenant-scoped; an account belonging to another tenant is reported as not
// found.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its identifier.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts in one round trip, keyed
	// by account ID. Missing accounts are simply absent from the map; the
	// caller decides whether that is an error.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a stable page of accounts ordered by account ID
	// ascending. afterID is the last-seen account ID cursor; empty means the
	// first page.
	ListAccounts(ctx context.Context, tenantID string, filter ListAccountsFilter, limit int, afterID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data. Accounts are
// written once at creation; there is no update path in the core.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrConflict when
	// the (tenant, code) pair already exists.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
