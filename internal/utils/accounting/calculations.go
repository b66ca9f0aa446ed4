package accounting

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateAmount rejects zero and negative movement amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	return nil
}

// Credit returns balance increased by amount.
func Credit(balance, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(amount)
}

// Debit returns balance decreased by amount, or ErrInsufficientBalance when the
// result would be negative.
func Debit(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	if balance.LessThan(amount) {
		return balance, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientBalance, balance.String(), amount.String())
	}
	return balance.Sub(amount), nil
}

// SignedAmount applies the ledger sign convention: credits positive, debits negative.
func SignedAmount(amount decimal.Decimal, isDebit bool) decimal.Decimal {
	if isDebit {
		return amount.Neg()
	}
	return amount
}

// SumEntries adds up the signed amounts of a set of ledger entries.
// The sum of an account's ledger equals its balance.
func SumEntries(entries []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}
