package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry by the operation that produced it.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Transfer TransactionType = "TRANSFER"
)

// Transaction is an immutable ledger entry against a single account.
// Amount is positive for credits and negative for debits.
type Transaction struct {
	TransactionID int64           `json:"transactionID"` // Store-generated
	AccountID     int64           `json:"accountID"`     // FK -> BankAccount.AccountID
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}
