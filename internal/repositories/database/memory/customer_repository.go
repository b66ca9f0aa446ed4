package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
)

// CustomerRepository is the in-memory customer directory.
type CustomerRepository struct {
	store *Store
}

var _ portsrepo.CustomerRepositoryFacade = (*CustomerRepository)(nil)

func (r *CustomerRepository) SaveCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[customer.Email]; exists {
		return nil, apperrors.NewDuplicate("customer with email %s already exists", customer.Email)
	}
	s.nextCustomerID++
	customer.CustomerID = s.nextCustomerID
	s.customers[customer.CustomerID] = customer
	s.emails[customer.Email] = customer.CustomerID
	return &customer, nil
}

func (r *CustomerRepository) FindCustomerByID(_ context.Context, customerID int64) (*domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	return &c, nil
}

func (r *CustomerRepository) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}
