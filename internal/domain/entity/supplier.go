package entity

import "time"

// Supplier representa un proveedor de materiales.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
