package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/dto"
	"github.com/finbook/ledger-service/internal/middleware"
	"github.com/finbook/ledger-service/internal/utils/pagination"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// accountService implements the account registry on top of the account
// repository.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account after validating code and currency.
// Implements portssvc.AccountSvcFacade.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.AccountCode)
	if len(code) < 1 || len(code) > 100 {
		return nil, fmt.Errorf("%w: account code must be between 1 and 100 characters", apperrors.ErrValidation)
	}
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if !currencyCodePattern.MatchString(currency) {
		return nil, fmt.Errorf("%w: currency code must be exactly 3 letters, got %q", apperrors.ErrValidation, req.CurrencyCode)
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      tenantID,
		AccountCode:   code,
		AccountType:   req.AccountType,
		CurrencyCode:  currency,
		AllowNegative: req.AllowNegative,
		Metadata:      req.Metadata,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Warn("Failed to save account", slog.String("tenant_id", tenantID), slog.String("account_code", code), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("tenant_id", tenantID), slog.String("account_id", account.AccountID), slog.String("account_code", code))
	return &account, nil
}

// GetAccountByID retrieves a single account scoped to the tenant.
// Implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
}

// GetAccountsByIDs retrieves several accounts in one batched lookup.
// Implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
}

// ListAccounts retrieves a stable page of accounts ordered by account ID
// ascending. Implements portssvc.AccountSvcFacade.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := normalizeLimit(params.Limit)

	afterID := ""
	if params.NextToken != nil && *params.NextToken != "" {
		decoded, err := pagination.DecodeIDToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		afterID = decoded
	}

	filter := portsrepo.ListAccountsFilter{}
	if params.AccountType != nil && *params.AccountType != "" {
		accountType := domain.AccountType(strings.ToUpper(*params.AccountType))
		if !accountType.Valid() {
			return nil, nil, fmt.Errorf("%w: unknown account type filter %q", apperrors.ErrValidation, *params.AccountType)
		}
		filter.AccountType = &accountType
	}
	if params.CurrencyCode != nil && *params.CurrencyCode != "" {
		currency := strings.ToUpper(*params.CurrencyCode)
		if !currencyCodePattern.MatchString(currency) {
			return nil, nil, fmt.Errorf("%w: invalid currency filter %q", apperrors.ErrValidation, *params.CurrencyCode)
		}
		filter.CurrencyCode = &currency
	}

	// Fetch one extra row to decide whether a next page exists.
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, filter, limit+1, afterID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	var nextToken *string
	if len(accounts) > limit {
		accounts = accounts[:limit]
		token := pagination.EncodeIDToken(accounts[limit-1].AccountID)
		nextToken = &token
	}

	return accounts, nextToken, nil
}
