package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción POS.
const (
	POSStatusOpen   = "OPEN"   // abierta en caja, admite ítems
	POSStatusClosed = "CLOSED" // cerrada y cobrada; inmutable
	POSStatusVoided = "VOIDED" // anulada antes de cerrar
)

// POSTransaction ticket de punto de venta. Cada ítem agregado descuenta stock
// en el momento (referencia = ID de la transacción).
type POSTransaction struct {
	ID            string
	WarehouseID   string
	CustomerID    string // opcional, venta de mostrador si vacío
	ReceiptNumber string // asignado al cerrar
	Status        string
	NetTotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	PaymentMethod string // cash, card, transfer
	CreatedBy     string
	CreatedAt     time.Time
	ClosedAt      *time.Time
}

// POSItem ítem de un ticket POS.
type POSItem struct {
	ID            string
	TransactionID string
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TaxRate       decimal.Decimal
	Subtotal      decimal.Decimal
}
