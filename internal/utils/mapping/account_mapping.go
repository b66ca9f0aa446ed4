package mapping

import (
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/SscSPs/bank_backoffice_app/internal/models"
)

// ToModelAccount converts a domain BankAccount to a model BankAccount
func ToModelAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		CustomerID:    d.CustomerID,
		Balance:       d.Balance,
		Currency:      d.Currency,
		Status:        models.AccountStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model BankAccount to a domain BankAccount
func ToDomainAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		CustomerID:    m.CustomerID,
		Balance:       m.Balance,
		Currency:      m.Currency,
		Status:        domain.AccountStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model BankAccounts to a slice of domain BankAccounts
func ToDomainAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
