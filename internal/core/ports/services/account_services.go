package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.BankAccount, error)

	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.BankAccount, error)

	// ListAccountsByCustomer retrieves all accounts of an existing customer.
	ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.BankAccount, error)
}

// AccountWriterSvc defines account lifecycle operations
type AccountWriterSvc interface {
	// CreateAccount opens a new ACTIVE account with a zero balance.
	CreateAccount(ctx context.Context, customerID int64, currency string) (*domain.BankAccount, error)

	// ChangeStatus moves an account to a new status, enforcing the status state machine.
	ChangeStatus(ctx context.Context, accountID int64, status domain.AccountStatus) (*domain.BankAccount, error)
}

// MoneyMovementSvc defines the balance-changing operations.
// Each runs in a single unit of work and appends its ledger entries atomically with the balance change.
type MoneyMovementSvc interface {
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) error
	Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) error
}

// LedgerReaderSvc defines read operations for the transaction ledger
type LedgerReaderSvc interface {
	// GetTransactions returns an account's ledger in chronological order.
	// limit <= 0 returns the whole ledger.
	GetTransactions(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// AccountingSvcFacade combines all accounting-engine service interfaces
// This is a facade for clients that need access to all operations
type AccountingSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	MoneyMovementSvc
	LedgerReaderSvc
}
