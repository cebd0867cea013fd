package models

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the database row shape of a ledger account.
type Account struct {
	AccountID     string            `db:"account_id"`
	TenantID      string            `db:"tenant_id"`
	AccountCode   string            `db:"account_code"`
	AccountType   AccountType       `db:"account_type"`
	CurrencyCode  string            `db:"currency_code"`
	AllowNegative bool              `db:"allow_negative"`
	Metadata      map[string]string `db:"metadata"` // jsonb, nullable
	CreatedAt     time.Time         `db:"created_at"`
	ClosedAt      *time.Time        `db:"closed_at"` // Nullable
}
