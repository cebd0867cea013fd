package repositories

import (
	"context"
	"time"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListJournalsFilter narrows a journal listing. Nil fields match everything.
type ListJournalsFilter struct {
	AccountID *string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// EntryReader defines read operations over the append-only entry store.
type EntryReader interface {
	// FindEntriesByJournalID retrieves all entries of one journal in posted
	// order. An empty result means the journal does not exist for the tenant.
	FindEntriesByJournalID(ctx context.Context, tenantID, journalID string) ([]domain.LedgerEntry, error)

	// FindJournalByIdempotencyKey resolves an idempotency key to the journal
	// it committed, with all entries populated. Returns apperrors.ErrNotFound
	// when the key has never been used.
	FindJournalByIdempotencyKey(ctx context.Context, key string) (*domain.Journal, error)

	// SumEntriesByAccount returns the account's raw balance (debits positive,
	// credits negative) over entries with effective_date <= asOf.
	SumEntriesByAccount(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error)

	// FindEntriesByAccountAndDateRange retrieves an account's entries with
	// startDate <= effective_date <= endDate, ordered by
	// (effective_date, posted_at) ascending.
	FindEntriesByAccountAndDateRange(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) ([]domain.LedgerEntry, error)

	// ListJournals retrieves a page of journals most-recent-first using
	// token-based pagination, entries populated. It returns the journals, a
	// token for the next page, and an error.
	ListJournals(ctx context.Context, tenantID string, filter ListJournalsFilter, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// ListEntriesByAccount retrieves a page of an account's entries
	// most-recent-first using token-based pagination.
	ListEntriesByAccount(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// EntryWriter defines the single mutation path into the entry store.
type EntryWriter interface {
	// CommitJournal atomically inserts all entries of one journal. Within the
	// same database transaction it locks the touched account rows, re-reads
	// their current raw totals and enforces each account's negative-balance
	// policy, so concurrent posts against the same accounts serialize.
	//
	// Returns apperrors.ErrOverdraft on a policy violation,
	// apperrors.ErrConflict when the idempotency key lost a commit race, and
	// apperrors.ErrNotFound when a referenced account does not exist for the
	// tenant. On any error nothing is written.
	CommitJournal(ctx context.Context, tenantID string, entries []domain.LedgerEntry) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
