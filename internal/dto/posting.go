package dto

import (
	"time"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one line of a transaction to post.
type EntryRequest struct {
	AccountID string                `json:"accountID" binding:"required"`
	Amount    decimal.Decimal       `json:"amount" binding:"required"`
	Direction domain.EntryDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
}

// PostTransactionRequest defines a journal to post. EffectiveDate defaults to
// today when omitted.
type PostTransactionRequest struct {
	Entries        []EntryRequest    `json:"entries" binding:"required,min=2,dive"`
	EffectiveDate  *time.Time        `json:"effectiveDate"`
	IdempotencyKey *string           `json:"idempotencyKey"`
	Metadata       map[string]string `json:"metadata"`
}

// EntryResponse defines the data returned for a committed ledger entry.
type EntryResponse struct {
	EntryID       string                `json:"entryID"`
	JournalID     string                `json:"journalID"`
	AccountID     string                `json:"accountID"`
	Amount        decimal.Decimal       `json:"amount"`
	Direction     domain.EntryDirection `json:"direction"`
	CurrencyCode  string                `json:"currencyCode"`
	EffectiveDate time.Time             `json:"effectiveDate"`
	PostedAt      time.Time             `json:"postedAt"`
	Metadata      map[string]string     `json:"metadata,omitempty"`
}

// JournalResponse defines the data returned for a journal with its entries.
type JournalResponse struct {
	JournalID     string          `json:"journalID"`
	CurrencyCode  string          `json:"currencyCode"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	PostedAt      time.Time       `json:"postedAt"`
	Entries       []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse.
func ToEntryResponse(e domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		JournalID:     e.JournalID,
		AccountID:     e.AccountID,
		Amount:        e.Amount,
		Direction:     e.Direction,
		CurrencyCode:  e.CurrencyCode,
		EffectiveDate: e.EffectiveDate,
		PostedAt:      e.PostedAt,
		Metadata:      e.Metadata,
	}
}

// ToEntryResponses converts a slice of entries to response DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(e)
	}
	return res
}

// ToJournalResponse converts a domain.Journal to JournalResponse.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:     j.JournalID,
		CurrencyCode:  j.CurrencyCode,
		EffectiveDate: j.EffectiveDate,
		PostedAt:      j.PostedAt,
		Entries:       ToEntryResponses(j.Entries),
	}
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
	AccountID *string    `form:"accountID"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02" time_utc:"1"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02" time_utc:"1"`
}

// ListJournalsResponse wraps a page of journals, most recent first.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListEntriesParams defines query parameters for an account activity listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of an account's entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
