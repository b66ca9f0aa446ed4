package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository is the in-memory append-only ledger.
type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) AppendTransactionInTx(_ context.Context, tx pgx.Tx, entry domain.Transaction) (*domain.Transaction, error) {
	mt, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	if _, ok := s.accounts[entry.AccountID]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: account with id %d", apperrors.ErrNotFound, entry.AccountID)
	}
	s.nextTransactionID++
	entry.TransactionID = s.nextTransactionID
	s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock()
	}
	mt.entries = append(mt.entries, entry)
	return &entry, nil
}

func (r *TransactionRepository) ListTransactionsByAccountID(_ context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var (
		hasCursor bool
		cursorAt  time.Time
		cursorID  int64
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeLedgerToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		hasCursor, cursorAt, cursorID = true, at, id
	}

	s := r.store
	s.mu.RLock()
	entries := []domain.Transaction{}
	for _, e := range s.ledger {
		if e.AccountID != accountID {
			continue
		}
		if hasCursor && !pagination.After(e.CreatedAt, e.TransactionID, cursorAt, cursorID) {
			continue
		}
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].TransactionID < entries[j].TransactionID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	var token *string
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeLedgerToken(last.CreatedAt, last.TransactionID)
		token = &t
	}
	return entries, token, nil
}
