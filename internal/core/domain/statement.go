package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one entry of an account statement carrying the raw running
// balance immediately after the entry was applied.
type StatementLine struct {
	Entry          LedgerEntry     `json:"entry"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// Statement is an ordered, running-balance view of an account over a date
// range. Opening, running and closing balances all use the raw accumulation
// (debit adds, credit subtracts), so closing always equals opening plus the
// period's effects.
type Statement struct {
	AccountID      string          `json:"accountID"`
	CurrencyCode   string          `json:"currencyCode"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Lines          []StatementLine `json:"lines"`
}
