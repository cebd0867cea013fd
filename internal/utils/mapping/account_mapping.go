package mapping

import (
	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/finbook/ledger-service/internal/models"
)

// ToModelAccount converts a domain.Account to its database row shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		TenantID:      d.TenantID,
		AccountCode:   d.AccountCode,
		AccountType:   models.AccountType(d.AccountType),
		CurrencyCode:  d.CurrencyCode,
		AllowNegative: d.AllowNegative,
		Metadata:      d.Metadata,
		CreatedAt:     d.CreatedAt,
		ClosedAt:      d.ClosedAt,
	}
}

// ToDomainAccount converts a database row to a domain.Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		TenantID:      m.TenantID,
		AccountCode:   m.AccountCode,
		AccountType:   domain.AccountType(m.AccountType),
		CurrencyCode:  m.CurrencyCode,
		AllowNegative: m.AllowNegative,
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
		ClosedAt:      m.ClosedAt,
	}
}

// ToDomainAccountSlice converts a slice of rows to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
