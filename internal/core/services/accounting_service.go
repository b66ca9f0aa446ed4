package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/SscSPs/bank_backoffice_app/internal/core/ports"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// accountingService is the accounting engine: account lifecycle and every
// balance-changing operation, each executed as a single unit of work.
type accountingService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryWithTx
	ledgerRepo   portsrepo.TransactionRepositoryFacade
	customerRepo portsrepo.CustomerReader
	publisher    ports.LedgerEventPublisher

	now              func() time.Time
	newAccountNumber func() string
}

// ServiceOption is a functional option for configuring the accounting service
type ServiceOption func(*accountingService)

// WithEventPublisher sets where committed ledger events are sent.
func WithEventPublisher(p ports.LedgerEventPublisher) ServiceOption {
	return func(s *accountingService) {
		s.publisher = p
	}
}

// WithClock overrides the time source used for audit fields and ledger entries.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *accountingService) {
		s.now = now
	}
}

// WithAccountNumberGenerator overrides how account numbers are assigned.
func WithAccountNumberGenerator(gen func() string) ServiceOption {
	return func(s *accountingService) {
		s.newAccountNumber = gen
	}
}

// NewAccountingService creates a new accounting engine with the provided options
func NewAccountingService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	ledgerRepo portsrepo.TransactionRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	options ...ServiceOption,
) portssvc.AccountingSvcFacade {
	svc := &accountingService{
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		now:          func() time.Time { return time.Now().UTC() },
		newAccountNumber: func() string {
			return domain.AccountNumberPrefix + uuid.NewString()
		},
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountingService implements the AccountingSvcFacade interface
var _ portssvc.AccountingSvcFacade = (*accountingService)(nil)

// inUnitOfWork runs fn inside a transaction. Any error from fn or from Commit leaves
// the store untouched via the deferred Rollback.
func (s *accountingService) inUnitOfWork(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back unit of work")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return s.accountRepo.Commit(ctx, tx)
}

// publish emits a ledger event after commit. Failures are logged only.
func (s *accountingService) publish(ctx context.Context, event ports.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event", slog.String("kind", string(event.Kind)))
	}
}

func (s *accountingService) CreateAccount(ctx context.Context, customerID int64, currency string) (*domain.BankAccount, error) {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return nil, fmt.Errorf("%w: currency must not be blank", apperrors.ErrValidation)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		s.LogFailure(ctx, err, "Customer lookup failed while opening account", slog.Int64("customer_id", customerID))
		return nil, err
	}

	now := s.now()
	account, err := s.accountRepo.SaveAccount(ctx, domain.BankAccount{
		AccountNumber: s.newAccountNumber(),
		CustomerID:    customerID,
		Balance:       decimal.Zero,
		Currency:      currency,
		Status:        domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save account", slog.Int64("customer_id", customerID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_number", account.AccountNumber),
		slog.Int64("customer_id", customerID))
	s.publish(ctx, ports.LedgerEvent{
		Kind:       ports.EventAccountOpened,
		ToAccount:  account.AccountNumber,
		Amount:     decimal.Zero,
		Currency:   account.Currency,
		Status:     string(account.Status),
		OccurredAt: now,
	})
	return account, nil
}

func (s *accountingService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	if err := accounting.ValidateAmount(amount); err != nil {
		return err
	}

	var account domain.BankAccount
	now := s.now()
	err := s.inUnitOfWork(ctx, func(tx pgx.Tx) error {
		locked, err := s.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, []string{accountNumber})
		if err != nil {
			return err
		}
		account = locked[accountNumber]
		if err := account.EnsureActive(); err != nil {
			return err
		}

		account.Balance = accounting.Credit(account.Balance, amount)
		account.LastUpdatedAt = now
		if err := s.accountRepo.UpdateAccountInTx(ctx, tx, account); err != nil {
			return err
		}
		_, err = s.ledgerRepo.AppendTransactionInTx(ctx, tx, domain.Transaction{
			AccountID:   account.AccountID,
			Type:        domain.Deposit,
			Amount:      accounting.SignedAmount(amount, false),
			Description: "Deposit",
			CreatedAt:   now,
		})
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Deposit failed", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
		return err
	}

	s.LogInfo(ctx, "Deposit committed", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
	s.publish(ctx, ports.LedgerEvent{
		Kind:       ports.EventDeposit,
		ToAccount:  accountNumber,
		Amount:     amount,
		Currency:   account.Currency,
		OccurredAt: now,
	})
	return nil
}

func (s *accountingService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	if err := accounting.ValidateAmount(amount); err != nil {
		return err
	}

	var account domain.BankAccount
	now := s.now()
	err := s.inUnitOfWork(ctx, func(tx pgx.Tx) error {
		locked, err := s.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, []string{accountNumber})
		if err != nil {
			return err
		}
		account = locked[accountNumber]
		if err := account.EnsureActive(); err != nil {
			return err
		}

		balance, err := accounting.Debit(account.Balance, amount)
		if err != nil {
			return fmt.Errorf("withdraw from %s: %w", accountNumber, err)
		}
		account.Balance = balance
		account.LastUpdatedAt = now
		if err := s.accountRepo.UpdateAccountInTx(ctx, tx, account); err != nil {
			return err
		}
		_, err = s.ledgerRepo.AppendTransactionInTx(ctx, tx, domain.Transaction{
			AccountID:   account.AccountID,
			Type:        domain.Withdraw,
			Amount:      accounting.SignedAmount(amount, true),
			Description: "Withdraw",
			CreatedAt:   now,
		})
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Withdraw failed", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
		return err
	}

	s.LogInfo(ctx, "Withdraw committed", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
	s.publish(ctx, ports.LedgerEvent{
		Kind:        ports.EventWithdraw,
		FromAccount: accountNumber,
		Amount:      amount,
		Currency:    account.Currency,
		OccurredAt:  now,
	})
	return nil
}

// Transfer moves amount from one account to another. Both rows are locked in ascending
// account-number order so opposing transfers cannot deadlock.
func (s *accountingService) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) error {
	if err := accounting.ValidateAmount(amount); err != nil {
		return err
	}
	if fromAccount == toAccount {
		return fmt.Errorf("%w: cannot transfer from account %s to itself", apperrors.ErrValidation, fromAccount)
	}

	var currency string
	now := s.now()
	err := s.inUnitOfWork(ctx, func(tx pgx.Tx) error {
		locked, err := s.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, []string{fromAccount, toAccount})
		if err != nil {
			return err
		}
		source, destination := locked[fromAccount], locked[toAccount]

		if err := source.EnsureActive(); err != nil {
			return err
		}
		if err := destination.EnsureActive(); err != nil {
			return err
		}
		if source.Currency != destination.Currency {
			return fmt.Errorf("%w: %s holds %s, %s holds %s", apperrors.ErrCurrencyMismatch,
				fromAccount, source.Currency, toAccount, destination.Currency)
		}

		debited, err := accounting.Debit(source.Balance, amount)
		if err != nil {
			return fmt.Errorf("transfer from %s: %w", fromAccount, err)
		}
		source.Balance = debited
		source.LastUpdatedAt = now
		destination.Balance = accounting.Credit(destination.Balance, amount)
		destination.LastUpdatedAt = now

		if err := s.accountRepo.UpdateAccountInTx(ctx, tx, source); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateAccountInTx(ctx, tx, destination); err != nil {
			return err
		}

		entries := []domain.Transaction{
			{
				AccountID:   source.AccountID,
				Type:        domain.Transfer,
				Amount:      accounting.SignedAmount(amount, true),
				Description: "Transfer to " + toAccount,
				CreatedAt:   now,
			},
			{
				AccountID:   destination.AccountID,
				Type:        domain.Transfer,
				Amount:      accounting.SignedAmount(amount, false),
				Description: "Transfer from " + fromAccount,
				CreatedAt:   now,
			},
		}
		for _, entry := range entries {
			if _, err := s.ledgerRepo.AppendTransactionInTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		currency = source.Currency
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed",
			slog.String("from_account", fromAccount),
			slog.String("to_account", toAccount),
			slog.String("amount", amount.String()))
		return err
	}

	s.LogInfo(ctx, "Transfer committed",
		slog.String("from_account", fromAccount),
		slog.String("to_account", toAccount),
		slog.String("amount", amount.String()))
	s.publish(ctx, ports.LedgerEvent{
		Kind:        ports.EventTransfer,
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      amount,
		Currency:    currency,
		OccurredAt:  now,
	})
	return nil
}

func (s *accountingService) ChangeStatus(ctx context.Context, accountID int64, status domain.AccountStatus) (*domain.BankAccount, error) {
	var account *domain.BankAccount
	now := s.now()
	err := s.inUnitOfWork(ctx, func(tx pgx.Tx) error {
		locked, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := locked.ChangeStatus(status); err != nil {
			return err
		}
		locked.LastUpdatedAt = now
		if err := s.accountRepo.UpdateAccountInTx(ctx, tx, *locked); err != nil {
			return err
		}
		account = locked
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Status change failed", slog.Int64("account_id", accountID), slog.String("status", string(status)))
		return nil, err
	}

	s.LogInfo(ctx, "Account status changed", slog.Int64("account_id", accountID), slog.String("status", string(status)))
	s.publish(ctx, ports.LedgerEvent{
		Kind:       ports.EventStatusChanged,
		ToAccount:  account.AccountNumber,
		Amount:     decimal.Zero,
		Currency:   account.Currency,
		Status:     string(account.Status),
		OccurredAt: now,
	})
	return account, nil
}

func (s *accountingService) GetTransactions(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		s.LogFailure(ctx, err, "Account lookup failed while reading ledger", slog.String("account_number", accountNumber))
		return nil, nil, err
	}

	entries, token, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, account.AccountID, limit, nextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list transactions", slog.String("account_number", accountNumber))
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.Transaction{}
	}
	s.LogDebug(ctx, "Transactions listed", slog.String("account_number", accountNumber), slog.Int("count", len(entries)))
	return entries, token, nil
}

func (s *accountingService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find account by number", slog.String("account_number", accountNumber))
		return nil, err
	}
	return account, nil
}

func (s *accountingService) GetAccountByID(ctx context.Context, accountID int64) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find account by ID", slog.Int64("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountingService) ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.BankAccount, error) {
	accounts, err := s.accountRepo.ListAccountsByCustomerID(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int64("customer_id", customerID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}
