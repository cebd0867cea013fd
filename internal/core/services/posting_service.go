package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/dto"
	"github.com/finbook/ledger-service/internal/middleware"
	"github.com/finbook/ledger-service/internal/utils/accounting"
)

var (
	ErrJournalMinEntries = errors.New("journal must have at least two entries")
	ErrCurrencyMismatch  = errors.New("accounts in a journal must share one currency")
	ErrAccountNotFound   = errors.New("account not found")
)

// postingService is the transaction poster: the only component that writes
// ledger entries.
type postingService struct {
	accountSvc portssvc.AccountSvcFacade
	entryRepo  portsrepo.EntryRepositoryFacade
}

// NewPostingService creates a new transaction poster.
func NewPostingService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountSvc: accountSvc,
		entryRepo:  entryRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction validates and atomically commits a set of entries as one
// journal. Implements portssvc.PostingSvcFacade.
//
// The validation pipeline runs in a fixed order, each step a hard failure
// with nothing written: cardinality, account existence and tenancy (one
// batched lookup), currency consistency, amount positivity, double-entry
// balance. The overdraft check runs inside the commit transaction under row
// locks so concurrent posts against the same accounts serialize.
func (s *postingService) PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Entries) < 2 {
		return nil, fmt.Errorf("%w: %s, got %d", apperrors.ErrValidation, ErrJournalMinEntries, len(req.Entries))
	}

	// Resolve every referenced account in one batched lookup. A missing or
	// cross-tenant account fails the whole transaction before anything else
	// is attempted.
	accountIDs := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	uniqueAccountIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		if _, found := accountsMap[id]; !found {
			return nil, fmt.Errorf("%w: %s: account %s", apperrors.ErrNotFound, ErrAccountNotFound, id)
		}
	}

	// Every account touched by the journal must share one currency.
	currency := ""
	for _, id := range uniqueAccountIDs {
		acc := accountsMap[id]
		if currency == "" {
			currency = acc.CurrencyCode
		} else if acc.CurrencyCode != currency {
			return nil, fmt.Errorf("%w: %s: journal mixes %s and %s",
				apperrors.ErrValidation, ErrCurrencyMismatch, currency, acc.CurrencyCode)
		}
	}

	effectiveDate := truncateToDate(time.Now())
	if req.EffectiveDate != nil {
		effectiveDate = truncateToDate(*req.EffectiveDate)
	}

	journalID := uuid.NewString()
	now := time.Now().UTC()

	entries := make([]domain.LedgerEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			JournalID:     journalID,
			TenantID:      tenantID,
			AccountID:     e.AccountID,
			Amount:        e.Amount,
			Direction:     e.Direction,
			CurrencyCode:  currency,
			EffectiveDate: effectiveDate,
			// Staggered by a microsecond per line so ordering within the
			// journal stays monotonic at the store's timestamp precision.
			PostedAt: now.Add(time.Duration(i) * time.Microsecond),
			Metadata: req.Metadata,
		}
	}
	// The idempotency key rides on the first entry only; its unique index is
	// the arbiter of the commit race.
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		entries[0].IdempotencyKey = req.IdempotencyKey
	}

	// Amount positivity and exact double-entry balance.
	if err := accounting.ValidateJournalBalance(entries); err != nil {
		return nil, err
	}

	// Fast path for idempotent replays. The race window this leaves is
	// closed below at commit time.
	if entries[0].IdempotencyKey != nil {
		existing, err := s.resolveIdempotencyKey(ctx, tenantID, *entries[0].IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logger.Info("Idempotent replay resolved before commit", slog.String("tenant_id", tenantID), slog.String("journal_id", existing.JournalID))
			return existing, nil
		}
	}

	err = s.entryRepo.CommitJournal(ctx, tenantID, entries)
	if err != nil {
		// A uniqueness violation on the idempotency key means a concurrent
		// post with the same key won the commit. Discard our journal and
		// return the winner's.
		if errors.Is(err, apperrors.ErrConflict) && entries[0].IdempotencyKey != nil {
			existing, resolveErr := s.resolveIdempotencyKey(ctx, tenantID, *entries[0].IdempotencyKey)
			if resolveErr != nil {
				return nil, resolveErr
			}
			if existing != nil {
				logger.Info("Idempotent replay resolved after commit conflict", slog.String("tenant_id", tenantID), slog.String("journal_id", existing.JournalID))
				return existing, nil
			}
		}
		logger.Warn("Failed to commit journal", slog.String("tenant_id", tenantID), slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal committed",
		slog.String("tenant_id", tenantID),
		slog.String("journal_id", journalID),
		slog.Int("entry_count", len(entries)),
		slog.String("currency", currency),
	)

	return &domain.Journal{
		JournalID:     journalID,
		TenantID:      tenantID,
		CurrencyCode:  currency,
		EffectiveDate: effectiveDate,
		PostedAt:      entries[0].PostedAt,
		Entries:       entries,
	}, nil
}

// resolveIdempotencyKey looks up the journal a key committed, if any. A key
// already used by a different tenant is a conflict, never a leak of the other
// tenant's journal.
func (s *postingService) resolveIdempotencyKey(ctx context.Context, tenantID, key string) (*domain.Journal, error) {
	existing, err := s.entryRepo.FindJournalByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve idempotency key: %w", err)
	}
	if existing.TenantID != tenantID {
		return nil, fmt.Errorf("%w: idempotency key already used", apperrors.ErrConflict)
	}
	return existing, nil
}

// GetJournalByID retrieves a committed journal with all its entries.
// Implements portssvc.PostingSvcFacade.
func (s *postingService) GetJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	entries, err := s.entryRepo.FindEntriesByJournalID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &domain.Journal{
		JournalID:     journalID,
		TenantID:      tenantID,
		CurrencyCode:  entries[0].CurrencyCode,
		EffectiveDate: entries[0].EffectiveDate,
		PostedAt:      entries[0].PostedAt,
		Entries:       entries,
	}, nil
}

// ListJournals retrieves a page of journals, most recent first.
// Implements portssvc.PostingSvcFacade.
func (s *postingService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.Journal, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListJournalsFilter{AccountID: params.AccountID}
	if params.DateFrom != nil {
		from := truncateToDate(*params.DateFrom)
		filter.DateFrom = &from
	}
	if params.DateTo != nil {
		to := truncateToDate(*params.DateTo)
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, nil, fmt.Errorf("%w: dateTo precedes dateFrom", apperrors.ErrValidation)
	}

	journals, nextToken, err := s.entryRepo.ListJournals(ctx, tenantID, filter, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}
	return journals, nextToken, nil
}

// ListEntriesByAccount retrieves a page of one account's entries, most recent
// first. Implements portssvc.PostingSvcFacade.
func (s *postingService) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, nil, err
	}
	return s.entryRepo.ListEntriesByAccount(ctx, tenantID, accountID, normalizeLimit(params.Limit), params.NextToken)
}
