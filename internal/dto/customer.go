package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	FullName string `json:"fullName" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID int64     `json:"customerID"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		FullName:   c.FullName,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to a list response.
func ToListCustomerResponse(customers []domain.Customer) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return ListCustomersResponse{Customers: res}
}
