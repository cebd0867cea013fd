package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
// The set is closed; every ledger rule dispatches on it.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether the account type carries a debit-normal
// balance. Asset/Expense balances grow with debits; Liability/Equity/Revenue
// balances grow with credits.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account within the core domain.
// Type and currency are immutable once the account is created; closing is the
// only lifecycle transition besides creation.
type Account struct {
	AccountID     string            `json:"accountID"`   // Primary key (UUID)
	TenantID      string            `json:"tenantID"`    // Owning tenant (NON-NULL)
	AccountCode   string            `json:"accountCode"` // Human-readable code, unique per tenant
	AccountType   AccountType       `json:"accountType"`
	CurrencyCode  string            `json:"currencyCode"`  // ISO 4217, 3 letters
	AllowNegative bool              `json:"allowNegative"` // Overdraft policy
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	ClosedAt      *time.Time        `json:"closedAt,omitempty"`
}
