package services

import (
	"context"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/finbook/ledger-service/internal/dto"
)

// AccountSvcFacade is the account registry contract exposed to handlers and
// to the posting engine.
type AccountSvcFacade interface {
	// CreateAccount registers a new account for the tenant. Returns
	// apperrors.ErrValidation for a bad code or currency and
	// apperrors.ErrConflict when the (tenant, code) pair already exists.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves one account; apperrors.ErrNotFound covers both
	// unknown and cross-tenant accounts.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves several accounts in one batched lookup,
	// keyed by account ID. Missing accounts are absent from the map.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by account ID
	// ascending, with the next-page cursor when more remain.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, *string, error)
}
