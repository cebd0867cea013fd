package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/middleware"
)

// statementService produces ordered running-balance statements from the entry
// store.
type statementService struct {
	accountSvc portssvc.AccountSvcFacade
	entryRepo  portsrepo.EntryReader
}

// NewStatementService creates a new statement generator.
func NewStatementService(entryRepo portsrepo.EntryReader, accountSvc portssvc.AccountSvcFacade) portssvc.StatementSvcFacade {
	return &statementService{
		accountSvc: accountSvc,
		entryRepo:  entryRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// GetStatement returns the account's statement between startDate and endDate
// inclusive. Implements portssvc.StatementSvcFacade.
//
// The opening balance is the raw balance as of the day immediately preceding
// startDate. Lines are ordered by (effective_date, posted_at) ascending and
// each carries the raw running balance after itself, so the statement is
// reproducible without recomputation: closing always equals opening plus the
// period's debits minus its credits.
func (s *statementService) GetStatement(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := truncateToDate(startDate)
	end := truncateToDate(endDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s precedes start date %s",
			apperrors.ErrValidation, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	account, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.entryRepo.SumEntriesByAccount(ctx, tenantID, accountID, start.AddDate(0, 0, -1))
	if err != nil {
		logger.Error("Failed to compute opening balance", slog.String("tenant_id", tenantID), slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute opening balance for account %s: %w", accountID, err)
	}

	entries, err := s.entryRepo.FindEntriesByAccountAndDateRange(ctx, tenantID, accountID, start, end)
	if err != nil {
		logger.Error("Failed to fetch statement entries", slog.String("tenant_id", tenantID), slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch entries for account %s: %w", accountID, err)
	}

	running := opening
	lines := make([]domain.StatementLine, len(entries))
	for i, e := range entries {
		running = running.Add(e.SignedAmount())
		lines[i] = domain.StatementLine{Entry: e, RunningBalance: running}
	}

	return &domain.Statement{
		AccountID:      accountID,
		CurrencyCode:   account.CurrencyCode,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		ClosingBalance: running,
		Lines:          lines,
	}, nil
}
