package services

import (
	"context"
	"time"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/finbook/ledger-service/internal/dto"
)

// PostingSvcFacade is the transaction poster contract: the only way entries
// get into the ledger.
type PostingSvcFacade interface {
	// PostTransaction validates and atomically commits a set of entries as
	// one journal. A request replayed with a known idempotency key returns
	// the originally committed journal unchanged.
	PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest) (*domain.Journal, error)

	// GetJournalByID retrieves a committed journal with all its entries.
	GetJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a page of journals, most recent first.
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.Journal, *string, error)

	// ListEntriesByAccount retrieves a page of one account's entries, most
	// recent first.
	ListEntriesByAccount(ctx context.Context, tenantID, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error)
}

// BalanceSvcFacade derives point-in-time balances from the entry store.
type BalanceSvcFacade interface {
	// GetBalance returns the account's displayed balance as of the given date
	// (today when nil).
	GetBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (*domain.Balance, error)

	// GetBalances applies GetBalance to each account independently.
	GetBalances(ctx context.Context, tenantID string, accountIDs []string, asOf *time.Time) ([]domain.Balance, error)
}

// StatementSvcFacade produces ordered running-balance statements.
type StatementSvcFacade interface {
	// GetStatement returns the account's statement between startDate and
	// endDate inclusive. Fails with apperrors.ErrValidation when
	// endDate < startDate.
	GetStatement(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) (*domain.Statement, error)
}
