package accounting

import (
	"fmt"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DisplayBalance converts a raw balance (debits positive, credits negative)
// into the conventionally presented balance for the account type.
// Debit-normal accounts display the raw balance as-is; credit-normal accounts
// display its negation, so a healthy balance reads as a non-negative number
// either way.
func DisplayBalance(accountType domain.AccountType, raw decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return raw
	}
	return raw.Neg()
}

// ValidateJournalBalance checks the double-entry invariant: the sum of debit
// amounts must exactly equal the sum of credit amounts, in exact decimal
// arithmetic. It also rejects non-positive amounts; negative effect is
// expressed through direction, never through a negative magnitude.
func ValidateJournalBalance(entries []domain.LedgerEntry) error {
	debitSum := decimal.Zero
	creditSum := decimal.Zero

	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount must be positive for account %s, got %s",
				apperrors.ErrValidation, e.AccountID, e.Amount.String())
		}
		if e.Direction == domain.Debit {
			debitSum = debitSum.Add(e.Amount)
		} else {
			creditSum = creditSum.Add(e.Amount)
		}
	}

	if !debitSum.Equal(creditSum) {
		return fmt.Errorf("%w: journal is unbalanced, debits sum to %s and credits sum to %s",
			apperrors.ErrValidation, debitSum.String(), creditSum.String())
	}
	return nil
}

// CheckOverdraft walks the journal's entries in order, projecting each
// account's raw balance forward from its current total, and fails on the
// first entry that pushes an allow_negative=false account past its normal
// side: debit-normal raw balances must stay >= 0, credit-normal raw balances
// must stay <= 0.
//
// currentRaw must hold the raw balance of every account touched by entries at
// the moment of the check; the caller is responsible for reading those totals
// under whatever isolation the commit requires.
func CheckOverdraft(entries []domain.LedgerEntry, accounts map[string]domain.Account, currentRaw map[string]decimal.Decimal) error {
	projected := make(map[string]decimal.Decimal, len(currentRaw))
	for id, raw := range currentRaw {
		projected[id] = raw
	}

	for _, e := range entries {
		acc, ok := accounts[e.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s missing during overdraft check", apperrors.ErrInternal, e.AccountID)
		}

		next := projected[e.AccountID].Add(e.SignedAmount())
		projected[e.AccountID] = next

		if acc.AllowNegative {
			continue
		}
		debitNormal := acc.AccountType.IsDebitNormal()
		if (debitNormal && next.IsNegative()) || (!debitNormal && next.IsPositive()) {
			return fmt.Errorf("%w: account %s would have balance %s",
				apperrors.ErrOverdraft, acc.AccountID, DisplayBalance(acc.AccountType, next).String())
		}
	}
	return nil
}
