package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether an entry row is a Debit or a Credit.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// Entry is the database row shape of a ledger entry. Rows are append-only;
// there is no update or delete path.
type Entry struct {
	EntryID        string            `db:"entry_id"`
	JournalID      string            `db:"journal_id"`
	TenantID       string            `db:"tenant_id"`
	AccountID      string            `db:"account_id"`
	Amount         decimal.Decimal   `db:"amount"`
	Direction      EntryDirection    `db:"direction"`
	CurrencyCode   string            `db:"currency_code"`
	EffectiveDate  time.Time         `db:"effective_date"`
	PostedAt       time.Time         `db:"posted_at"`
	IdempotencyKey *string           `db:"idempotency_key"` // Nullable, globally unique
	Metadata       map[string]string `db:"metadata"`        // jsonb, nullable
}
