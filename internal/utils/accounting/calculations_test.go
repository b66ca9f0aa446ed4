package accounting

import (
	"testing"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("0.01")))
	assert.ErrorIs(t, ValidateAmount(decimal.Zero), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateAmount(decimal.RequireFromString("-5")), apperrors.ErrValidation)
}

func TestDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		amount  string
		want    string
		wantErr bool
	}{
		{name: "partial", balance: "100.00", amount: "30.00", want: "70.00"},
		{name: "exact", balance: "50.00", amount: "50.00", want: "0"},
		{name: "overdraw", balance: "70.00", amount: "1000.00", wantErr: true},
		{name: "one cent over", balance: "0", amount: "0.01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := decimal.RequireFromString(tt.balance)
			got, err := Debit(balance, decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
				assert.True(t, got.Equal(balance), "balance must be returned unchanged")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestCreditAndSignedAmount(t *testing.T) {
	b := Credit(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.20"))
	assert.True(t, b.Equal(decimal.RequireFromString("0.30")))

	a := decimal.RequireFromString("12.5")
	assert.True(t, SignedAmount(a, true).Equal(a.Neg()))
	assert.True(t, SignedAmount(a, false).Equal(a))
}

func TestSumEntries(t *testing.T) {
	entries := []domain.Transaction{
		{Type: domain.Deposit, Amount: decimal.RequireFromString("100.00")},
		{Type: domain.Withdraw, Amount: decimal.RequireFromString("-30.00")},
		{Type: domain.Transfer, Amount: decimal.RequireFromString("-70.00")},
	}
	assert.True(t, SumEntries(entries).IsZero())
	assert.True(t, SumEntries(nil).IsZero())
}
