package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a point-in-time balance for one account, already converted to
// the account type's display convention.
type Balance struct {
	AccountID    string          `json:"accountID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	AsOf         time.Time       `json:"asOf"`
}
