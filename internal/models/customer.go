package models

// Customer is the row layout of the customers table.
type Customer struct {
	CustomerID     string `db:"customer_id"`
	Name           string `db:"name"`
	Identification string `db:"identification"`
	Gender         string `db:"gender"`
	Address        string `db:"address"`
	Phone          string `db:"phone"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
