package models

import (
	"github.com/shopspring/decimal"
)

// AccountStatus mirrors the CHECK constraint on bank_accounts.status.
type AccountStatus string

// BankAccount is the row layout of the bank_accounts table.
type BankAccount struct {
	AccountID     int64           `db:"account_id"`
	AccountNumber string          `db:"account_number"` // UNIQUE
	CustomerID    int64           `db:"customer_id"`    // FK -> customers
	Balance       decimal.Decimal `db:"balance"`        // NUMERIC, CHECK >= 0
	Currency      string          `db:"currency"`
	Status        AccountStatus   `db:"status"`
	AuditFields
}
