package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice_app/internal/models"
	"github.com/SscSPs/bank_backoffice_app/internal/utils/mapping"
	"github.com/SscSPs/bank_backoffice_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// AppendTransactionInTx inserts a ledger entry. The ledger is append-only; there is no update path.
func (r *PgxTransactionRepository) AppendTransactionInTx(ctx context.Context, tx pgx.Tx, entry domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(entry)
	query := `
		INSERT INTO transactions (account_id, type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transaction_id;
	`
	if err := tx.QueryRow(ctx, query, m.AccountID, m.Type, m.Amount, m.Description, m.CreatedAt).Scan(&m.TransactionID); err != nil {
		return nil, fmt.Errorf("failed to append %s entry for account %d: %w", m.Type, m.AccountID, err)
	}

	saved := mapping.ToDomainTransaction(m)
	return &saved, nil
}

// ListTransactionsByAccountID returns the ledger of an account using keyset pagination on
// (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := []any{accountID}
	query := `
		SELECT transaction_id, account_id, type, amount, description, created_at
		FROM transactions
		WHERE account_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeLedgerToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, transaction_id) > ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}
	query += ` ORDER BY created_at ASC, transaction_id ASC`
	if limit > 0 {
		// Fetch one extra row to know whether another page exists.
		query += fmt.Sprintf(` LIMIT %d`, limit+1)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	entries := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.AccountID, &m.Type, &m.Amount, &m.Description, &m.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeLedgerToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainTransactionSlice(entries), token, nil
}
