// Package memory is an in-process implementation of the repository ports.
// Units of work are serialized: Begin acquires a store-wide writer slot that is
// released by Commit or Rollback, and writes staged on the transaction become
// visible only on Commit.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// Store holds every table of the service in memory.
type Store struct {
	writer chan struct{} // capacity 1; held by the open unit of work

	mu        sync.RWMutex
	customers map[int64]domain.Customer
	emails    map[string]int64
	accounts  map[int64]domain.BankAccount
	numbers   map[string]int64
	ledger    []domain.Transaction

	nextCustomerID    int64
	nextAccountID     int64
	nextTransactionID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		writer:    make(chan struct{}, 1),
		customers: make(map[int64]domain.Customer),
		emails:    make(map[string]int64),
		accounts:  make(map[int64]domain.BankAccount),
		numbers:   make(map[string]int64),
	}
}

// NewRepositoryProvider wires the memory repositories around a shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:    &CustomerRepository{store: store},
		AccountRepo:     &AccountRepository{store: store},
		TransactionRepo: &TransactionRepository{store: store},
	}
}

// memTx is the unit-of-work handle handed out by Begin. Only Commit and Rollback
// are implemented; the embedded pgx.Tx is nil and must not be used.
type memTx struct {
	pgx.Tx
	store    *Store
	accounts map[int64]domain.BankAccount // staged account rows, keyed by id
	order    []int64
	entries  []domain.Transaction
	done     bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	defer t.release()

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, id := range t.order {
		t.store.accounts[id] = t.accounts[id]
	}
	t.store.ledger = append(t.store.ledger, t.entries...)
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.release()
	return nil
}

func (t *memTx) release() {
	<-t.store.writer
}

// stage records an account row on the transaction, returning the staged copy.
func (t *memTx) stage(acc domain.BankAccount) domain.BankAccount {
	if staged, ok := t.accounts[acc.AccountID]; ok {
		return staged
	}
	t.accounts[acc.AccountID] = acc
	t.order = append(t.order, acc.AccountID)
	return acc
}

func (s *Store) begin(ctx context.Context) (pgx.Tx, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, apperrors.NewAppError(500, "failed to begin transaction", ctx.Err())
	}
	return &memTx{store: s, accounts: make(map[int64]domain.BankAccount)}, nil
}

func asMemTx(tx pgx.Tx) (*memTx, error) {
	mt, ok := tx.(*memTx)
	if !ok || mt == nil {
		return nil, fmt.Errorf("memory store: unsupported transaction handle %T", tx)
	}
	if mt.done {
		return nil, pgx.ErrTxClosed
	}
	return mt, nil
}

func (s *Store) clock() time.Time {
	return time.Now().UTC()
}
