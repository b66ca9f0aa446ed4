package models

// Customer is the row layout of the customers table.
type Customer struct {
	CustomerID int64  `db:"customer_id"`
	FullName   string `db:"full_name"`
	Email      string `db:"email"` // UNIQUE
	AuditFields
}
