package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook/ledger-service/internal/core/domain"
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/middleware"
	"github.com/finbook/ledger-service/internal/utils/accounting"
)

// balanceService derives point-in-time balances from the entry store,
// applying each account type's display convention.
type balanceService struct {
	accountSvc portssvc.AccountSvcFacade
	entryRepo  portsrepo.EntryReader
}

// NewBalanceService creates a new balance calculator.
func NewBalanceService(entryRepo portsrepo.EntryReader, accountSvc portssvc.AccountSvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountSvc: accountSvc,
		entryRepo:  entryRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance returns the account's displayed balance as of the given date.
// Implements portssvc.BalanceSvcFacade.
func (s *balanceService) GetBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (*domain.Balance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asOfDate := truncateToDate(time.Now())
	if asOf != nil {
		asOfDate = truncateToDate(*asOf)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	raw, err := s.entryRepo.SumEntriesByAccount(ctx, tenantID, accountID, asOfDate)
	if err != nil {
		logger.Error("Failed to sum entries for balance", slog.String("tenant_id", tenantID), slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}

	return &domain.Balance{
		AccountID:    accountID,
		Balance:      accounting.DisplayBalance(account.AccountType, raw),
		CurrencyCode: account.CurrencyCode,
		AsOf:         asOfDate,
	}, nil
}

// GetBalances applies GetBalance to each account independently; each account
// resolves or fails on its own, and any failure fails the call.
// Implements portssvc.BalanceSvcFacade.
func (s *balanceService) GetBalances(ctx context.Context, tenantID string, accountIDs []string, asOf *time.Time) ([]domain.Balance, error) {
	balances := make([]domain.Balance, 0, len(accountIDs))
	for _, accountID := range accountIDs {
		balance, err := s.GetBalance(ctx, tenantID, accountID, asOf)
		if err != nil {
			return nil, err
		}
		balances = append(balances, *balance)
	}
	return balances, nil
}
