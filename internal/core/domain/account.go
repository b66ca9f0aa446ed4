package domain

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a bank account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusClosed   AccountStatus = "CLOSED"
)

// AccountNumberPrefix prefixes every generated account number.
const AccountNumberPrefix = "ACC-"

// IsValid reports whether s is one of the known statuses.
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether an account in status s may move to next.
// CLOSED -> ACTIVE is the only forbidden transition; no-op transitions are allowed.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	return !(s == StatusClosed && next == StatusActive)
}

// BankAccount represents a customer's account within the core domain.
type BankAccount struct {
	AccountID     int64           `json:"accountID"`     // Store-generated
	AccountNumber string          `json:"accountNumber"` // Unique, assigned at creation
	CustomerID    int64           `json:"customerID"`    // Owning customer, immutable
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"` // Immutable after creation
	Status        AccountStatus   `json:"status"`
	AuditFields
}

// EnsureActive returns ErrInactiveAccount unless the account is ACTIVE.
func (a *BankAccount) EnsureActive() error {
	if a.Status != StatusActive {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrInactiveAccount, a.AccountNumber, a.Status)
	}
	return nil
}

// ChangeStatus moves the account to next, enforcing the status state machine.
func (a *BankAccount) ChangeStatus(next AccountStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, next)
	}
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move account %s from %s to %s", apperrors.ErrInvalidTransition, a.AccountNumber, a.Status, next)
	}
	a.Status = next
	return nil
}
