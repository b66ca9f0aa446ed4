package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// AccountRepository is the in-memory account store. It also owns the unit-of-work
// lifecycle for the shared Store.
type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryWithTx = (*AccountRepository)(nil)

func (r *AccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.store.begin(ctx)
}

func (r *AccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func (r *AccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

func (r *AccountRepository) SaveAccount(_ context.Context, account domain.BankAccount) (*domain.BankAccount, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[account.CustomerID]; !ok {
		return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, account.CustomerID)
	}
	if _, exists := s.numbers[account.AccountNumber]; exists {
		return nil, apperrors.NewDuplicate("account with number %s already exists", account.AccountNumber)
	}
	s.nextAccountID++
	account.AccountID = s.nextAccountID
	s.accounts[account.AccountID] = account
	s.numbers[account.AccountNumber] = account.AccountID
	return &account, nil
}

func (r *AccountRepository) FindAccountByID(_ context.Context, accountID int64) (*domain.BankAccount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account with id %d", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (r *AccountRepository) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.BankAccount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.numbers[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: account with number %s", apperrors.ErrNotFound, accountNumber)
	}
	acc := s.accounts[id]
	return &acc, nil
}

func (r *AccountRepository) ListAccountsByCustomerID(_ context.Context, customerID int64) ([]domain.BankAccount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.BankAccount{}
	for _, acc := range s.accounts {
		if acc.CustomerID == customerID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// FindAccountsByNumbersForUpdate stages the requested rows on tx. The store-wide writer
// slot held by tx already excludes every other unit of work.
func (r *AccountRepository) FindAccountsByNumbersForUpdate(_ context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.BankAccount, error) {
	mt, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}
	ordered := append([]string(nil), accountNumbers...)
	sort.Strings(ordered)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	locked := make(map[string]domain.BankAccount, len(ordered))
	for _, number := range ordered {
		id, ok := s.numbers[number]
		if !ok {
			return nil, fmt.Errorf("%w: account with number %s", apperrors.ErrNotFound, number)
		}
		locked[number] = mt.stage(s.accounts[id])
	}
	return locked, nil
}

func (r *AccountRepository) FindAccountByIDForUpdate(_ context.Context, tx pgx.Tx, accountID int64) (*domain.BankAccount, error) {
	mt, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account with id %d", apperrors.ErrNotFound, accountID)
	}
	staged := mt.stage(acc)
	return &staged, nil
}

// UpdateAccountInTx stages new balance and status values. Negative balances are refused
// the same way the database CHECK constraint refuses them.
func (r *AccountRepository) UpdateAccountInTx(_ context.Context, tx pgx.Tx, account domain.BankAccount) error {
	mt, err := asMemTx(tx)
	if err != nil {
		return err
	}
	current, ok := mt.accounts[account.AccountID]
	if !ok {
		return fmt.Errorf("account %d was not locked in this transaction", account.AccountID)
	}
	if account.Balance.IsNegative() {
		return fmt.Errorf("balance check violated for account %s: %s", current.AccountNumber, account.Balance)
	}

	current.Balance = account.Balance
	current.Status = account.Status
	current.LastUpdatedAt = account.LastUpdatedAt
	mt.accounts[account.AccountID] = current
	return nil
}
