package dto

import (
	"time"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	AccountID    string          `json:"accountID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	AsOf         time.Time       `json:"asOf"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		AccountID:    b.AccountID,
		Balance:      b.Balance,
		CurrencyCode: b.CurrencyCode,
		AsOf:         b.AsOf,
	}
}

// GetBalanceParams defines query parameters for a single balance query.
type GetBalanceParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
}

// GetStatementParams defines query parameters for a statement query.
type GetStatementParams struct {
	StartDate time.Time `form:"startDate" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	EndDate   time.Time `form:"endDate" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

// GetBalancesRequest asks for balances of several accounts at once.
type GetBalancesRequest struct {
	AccountIDs []string   `json:"accountIDs" binding:"required,min=1"`
	AsOf       *time.Time `json:"asOf"`
}

// GetBalancesResponse carries one balance per requested account.
type GetBalancesResponse struct {
	Balances []BalanceResponse `json:"balances"`
}

// StatementLineResponse is one statement line with its running balance.
type StatementLineResponse struct {
	Entry          EntryResponse   `json:"entry"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// StatementResponse defines the data returned for a statement query.
type StatementResponse struct {
	AccountID      string                  `json:"accountID"`
	CurrencyCode   string                  `json:"currencyCode"`
	StartDate      time.Time               `json:"startDate"`
	EndDate        time.Time               `json:"endDate"`
	OpeningBalance decimal.Decimal         `json:"openingBalance"`
	ClosingBalance decimal.Decimal         `json:"closingBalance"`
	Lines          []StatementLineResponse `json:"lines"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = StatementLineResponse{
			Entry:          ToEntryResponse(l.Entry),
			RunningBalance: l.RunningBalance,
		}
	}
	return StatementResponse{
		AccountID:      s.AccountID,
		CurrencyCode:   s.CurrencyCode,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		Lines:          lines,
	}
}
