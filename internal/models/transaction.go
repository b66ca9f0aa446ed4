package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors the CHECK constraint on transactions.type.
type TransactionType string

// Transaction is the row layout of the append-only transactions table.
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	AccountID     int64           `db:"account_id"` // FK -> bank_accounts
	Type          TransactionType `db:"type"`
	Amount        decimal.Decimal `db:"amount"` // Signed: credits positive, debits negative
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}
