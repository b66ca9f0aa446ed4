package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice_app/internal/dto"
	"github.com/go-playground/validator/v10"
)

// customerService implements the customer directory operations.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	validate     *validator.Validate
	now          func() time.Time
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: repo,
		validate:     validator.New(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer validates and registers a customer. Emails are stored trimmed and
// lower-cased so uniqueness is case-insensitive.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: malformed email %q", apperrors.ErrValidation, req.Email)
	}

	now := s.now()
	saved, err := s.customerRepo.SaveCustomer(ctx, domain.Customer{
		FullName: fullName,
		Email:    email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save customer", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "Customer created", slog.Int64("customer_id", saved.CustomerID))
	return saved, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find customer", slog.Int64("customer_id", customerID))
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}
