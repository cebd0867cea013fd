package mapping

import (
	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/finbook/ledger-service/internal/models"
)

// ToModelEntry converts a domain.LedgerEntry to its database row shape.
func ToModelEntry(d domain.LedgerEntry) models.Entry {
	return models.Entry{
		EntryID:        d.EntryID,
		JournalID:      d.JournalID,
		TenantID:       d.TenantID,
		AccountID:      d.AccountID,
		Amount:         d.Amount,
		Direction:      models.EntryDirection(d.Direction),
		CurrencyCode:   d.CurrencyCode,
		EffectiveDate:  d.EffectiveDate,
		PostedAt:       d.PostedAt,
		IdempotencyKey: d.IdempotencyKey,
		Metadata:       d.Metadata,
	}
}

// ToDomainEntry converts a database row to a domain.LedgerEntry.
func ToDomainEntry(m models.Entry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		JournalID:      m.JournalID,
		TenantID:       m.TenantID,
		AccountID:      m.AccountID,
		Amount:         m.Amount,
		Direction:      domain.EntryDirection(m.Direction),
		CurrencyCode:   m.CurrencyCode,
		EffectiveDate:  m.EffectiveDate,
		PostedAt:       m.PostedAt,
		IdempotencyKey: m.IdempotencyKey,
		Metadata:       m.Metadata,
	}
}

// ToDomainEntrySlice converts a slice of rows to domain entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
