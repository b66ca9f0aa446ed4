package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice_app/internal/models"
	"github.com/SscSPs/bank_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_number, customer_id, balance, currency, status, created_at, last_updated_at`

func scanAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.CustomerID,
		&m.Balance,
		&m.Currency,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account and returns it with its generated id.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) (*domain.BankAccount, error) {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO bank_accounts (account_number, customer_id, balance, currency, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.AccountNumber,
		m.CustomerID,
		m.Balance,
		m.Currency,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.AccountID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewDuplicate("account with number %s already exists", m.AccountNumber)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", m.AccountNumber, err)
	}

	saved := mapping.ToDomainAccount(m)
	return &saved, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_id = $1;`
	return r.findOne(ctx, r.Pool.QueryRow(ctx, query, accountID), fmt.Sprintf("id %d", accountID))
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_number = $1;`
	return r.findOne(ctx, r.Pool.QueryRow(ctx, query, accountNumber), "number "+accountNumber)
}

func (r *PgxAccountRepository) findOne(_ context.Context, row pgx.Row, key string) (*domain.BankAccount, error) {
	m, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account with %s", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find account by %s: %w", key, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccountsByCustomerID retrieves every account owned by a customer.
func (r *PgxAccountRepository) ListAccountsByCustomerID(ctx context.Context, customerID int64) ([]domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE customer_id = $1 ORDER BY account_id;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for customer %d: %w", customerID, err)
		}
		accounts = append(accounts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for customer %d: %w", customerID, rows.Err())
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// FindAccountsByNumbersForUpdate locks the requested accounts one row at a time in ascending
// account-number order. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.BankAccount, error) {
	ordered := make([]string, 0, len(accountNumbers))
	seen := make(map[string]bool, len(accountNumbers))
	for _, n := range accountNumbers {
		if !seen[n] {
			seen[n] = true
			ordered = append(ordered, n)
		}
	}
	sort.Strings(ordered)

	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_number = $1 FOR UPDATE;`

	locked := make(map[string]domain.BankAccount, len(ordered))
	for _, number := range ordered {
		m, err := scanAccount(tx.QueryRow(ctx, query, number))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				slog.WarnContext(ctx, "Account requested for update lock was not found", "account_number", number)
				return nil, fmt.Errorf("%w: account with number %s", apperrors.ErrNotFound, number)
			}
			return nil, fmt.Errorf("failed to lock account %s: %w", number, err)
		}
		locked[number] = mapping.ToDomainAccount(m)
	}

	return locked, nil
}

// FindAccountByIDForUpdate locks a single account row. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx.QueryRow(ctx, query, accountID), fmt.Sprintf("id %d", accountID))
}

// UpdateAccountInTx writes the balance, status and update timestamp of an account.
func (r *PgxAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.BankAccount) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE bank_accounts
		SET balance = $2, status = $3, last_updated_at = $4
		WHERE account_id = $1;
	`
	// account_number, customer_id and currency are immutable after creation.

	cmdTag, err := tx.Exec(ctx, query, m.AccountID, m.Balance, m.Status, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d not found during update", apperrors.ErrNotFound, m.AccountID)
	}

	return nil
}
