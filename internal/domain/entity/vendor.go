package entity

import "time"

// Vendor representa un proveedor al que se le compra mercancía.
type Vendor struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
