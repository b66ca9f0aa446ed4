package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// ListTransactionsByAccountID returns an account's ledger ordered by created_at, then id.
	// A limit <= 0 returns the whole ledger. The returned token is non-nil when more entries exist.
	ListTransactionsByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the append-only write path of the ledger
type TransactionWriter interface {
	// AppendTransactionInTx inserts a ledger entry within a given transaction.
	AppendTransactionInTx(ctx context.Context, tx pgx.Tx, entry domain.Transaction) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
