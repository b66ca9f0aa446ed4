package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its store-generated id.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.BankAccount, error)

	// FindAccountByNumber retrieves an account by its unique account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.BankAccount, error)

	// ListAccountsByCustomerID retrieves all accounts owned by a customer, ordered by id.
	ListAccountsByCustomerID(ctx context.Context, customerID int64) ([]domain.BankAccount, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account and returns it with its store-generated id.
	SaveAccount(ctx context.Context, account domain.BankAccount) (*domain.BankAccount, error)
}

// AccountTransactionSupport defines operations that run inside a unit of work
type AccountTransactionSupport interface {
	// FindAccountsByNumbersForUpdate locks the requested accounts one by one in ascending
	// account-number order and returns them keyed by account number.
	// Missing accounts yield apperrors.ErrNotFound.
	FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.BankAccount, error)

	// FindAccountByIDForUpdate locks and returns a single account by id.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.BankAccount, error)

	// UpdateAccountInTx persists the balance and status of an account within a given transaction.
	UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.BankAccount) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
