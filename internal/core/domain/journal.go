package domain

import "time"

// Journal is the set of ledger entries committed atomically under one journal
// identifier. It is not a stored entity of its own; the shape here is the
// read-side grouping of entries.
type Journal struct {
	JournalID     string        `json:"journalID"`
	TenantID      string        `json:"tenantID"`
	CurrencyCode  string        `json:"currencyCode"`
	EffectiveDate time.Time     `json:"effectiveDate"`
	PostedAt      time.Time     `json:"postedAt"` // Posted time of the journal's first entry
	Entries       []LedgerEntry `json:"entries"`
}
