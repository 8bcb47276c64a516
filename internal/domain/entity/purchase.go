package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de una compra a proveedor. Inmutable una vez confirmada:
// las correcciones se hacen con ajustes o devoluciones, nunca editando la compra.
type Purchase struct {
	ID          string
	VendorID    string
	WarehouseID string
	Number      string
	Date        time.Time
	NetTotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

// PurchaseItem línea de compra: cada una genera un movimiento purchase (+qty).
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
