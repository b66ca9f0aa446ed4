package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	CustomerID int64  `json:"customerId" binding:"required,gt=0"`
	Currency   string `json:"currency" binding:"required,max=64"`
}

// DepositRequest credits an account.
// Amount accepts a JSON number or a numeric string.
type DepositRequest struct {
	AccountNumber string           `json:"accountNumber" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required,positive_amount"`
}

// WithdrawRequest debits an account.
type WithdrawRequest struct {
	AccountNumber string           `json:"accountNumber" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required,positive_amount"`
}

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	FromAccount string           `json:"fromAccount" binding:"required"`
	ToAccount   string           `json:"toAccount" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,positive_amount"`
}

// ChangeStatusRequest defines the target status of an account.
type ChangeStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE INACTIVE CLOSED"`
}

// AccountIDUri binds the numeric account id path parameter.
type AccountIDUri struct {
	AccountID int64 `uri:"account" binding:"required,gt=0"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.BankAccount.
type AccountResponse struct {
	AccountID     int64                `json:"accountID"`
	AccountNumber string               `json:"accountNumber"`
	CustomerID    int64                `json:"customerID"`
	Balance       decimal.Decimal      `json:"balance"`
	Currency      string               `json:"currency"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.BankAccount to AccountResponse DTO
func ToAccountResponse(acc *domain.BankAccount) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		CustomerID:    acc.CustomerID,
		Balance:       acc.Balance,
		Currency:      acc.Currency,
		Status:        acc.Status,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.BankAccount to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.BankAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i]) // Reuse the single converter
	}
	return res
}
