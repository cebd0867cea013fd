package domain_test

import (
	"testing"

	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_SignedAmount(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.LedgerEntry
		want  string
	}{
		{
			name:  "debit is positive",
			entry: domain.LedgerEntry{Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			want:  "100",
		},
		{
			name:  "credit is negative",
			entry: domain.LedgerEntry{Amount: decimal.NewFromInt(100), Direction: domain.Credit},
			want:  "-100",
		},
		{
			name:  "fractional credit keeps precision",
			entry: domain.LedgerEntry{Amount: decimal.RequireFromString("0.333"), Direction: domain.Credit},
			want:  "-0.333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.SignedAmount()
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        bool
	}{
		{domain.Asset, true},
		{domain.Expense, true},
		{domain.Liability, false},
		{domain.Equity, false},
		{domain.Revenue, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.IsDebitNormal())
		})
	}
}

func TestAccountType_Valid(t *testing.T) {
	for _, at := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		assert.True(t, at.Valid(), "%s should be valid", at)
	}
	assert.False(t, domain.AccountType("SAVINGS").Valid())
	assert.False(t, domain.AccountType("").Valid())
}
