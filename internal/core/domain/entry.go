package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether a ledger entry is a Debit or a Credit.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// LedgerEntry is a single immutable line in the ledger, affecting one account.
// Entries are written only by the posting engine, in bulk per journal, and are
// never updated or deleted; a reversal is a new journal with opposite
// directions.
type LedgerEntry struct {
	EntryID        string            `json:"entryID"`   // Primary key (UUID)
	JournalID      string            `json:"journalID"` // Groups entries posted together
	TenantID       string            `json:"tenantID"`
	AccountID      string            `json:"accountID"`
	Amount         decimal.Decimal   `json:"amount"` // Always strictly positive
	Direction      EntryDirection    `json:"direction"`
	CurrencyCode   string            `json:"currencyCode"` // Matches the account's currency
	EffectiveDate  time.Time         `json:"effectiveDate"` // Accounting date (day precision)
	PostedAt       time.Time         `json:"postedAt"`      // Wall-clock insert time, monotonic per journal
	IdempotencyKey *string           `json:"idempotencyKey,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// SignedAmount returns the raw-model effect of the entry: +amount for a
// debit, -amount for a credit.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount
	}
	return e.Amount.Neg()
}
