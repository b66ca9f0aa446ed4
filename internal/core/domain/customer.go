package domain

// Customer is an identity record owning zero or more bank accounts.
// Customers are immutable once registered and are never deleted.
type Customer struct {
	CustomerID int64  `json:"customerID"` // Store-generated
	FullName   string `json:"fullName"`
	Email      string `json:"email"` // Unique, stored lower-cased
	AuditFields
}
