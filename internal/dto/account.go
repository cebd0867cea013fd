package dto

import (
	"time"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	AccountCode   string             `json:"accountCode" binding:"required,min=1,max=100"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode  string             `json:"currencyCode" binding:"required,currencycode"`
	AllowNegative bool               `json:"allowNegative"`
	Metadata      map[string]string  `json:"metadata"`
}

// AccountResponse defines the data returned for an account. Balance is only
// populated on single-account reads.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	TenantID      string             `json:"tenantID"`
	AccountCode   string             `json:"accountCode"`
	AccountType   domain.AccountType `json:"accountType"`
	CurrencyCode  string             `json:"currencyCode"`
	AllowNegative bool               `json:"allowNegative"`
	Metadata      map[string]string  `json:"metadata,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	ClosedAt      *time.Time         `json:"closedAt,omitempty"`
	Balance       *decimal.Decimal   `json:"balance,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		TenantID:      acc.TenantID,
		AccountCode:   acc.AccountCode,
		AccountType:   acc.AccountType,
		CurrencyCode:  acc.CurrencyCode,
		AllowNegative: acc.AllowNegative,
		Metadata:      acc.Metadata,
		CreatedAt:     acc.CreatedAt,
		ClosedAt:      acc.ClosedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
	AccountType  *string `form:"accountType"`
	CurrencyCode *string `form:"currencyCode"`
}

// ListAccountsResponse wraps a page of accounts with the cursor for the next
// page, if any.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
