package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Inmutable tras confirmarse junto con sus
// movimientos de stock; las correcciones se hacen con una devolución.
type Sale struct {
	ID          string
	CustomerID  string
	WarehouseID string
	Number      string
	Date        time.Time
	NetTotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
}

// SaleItem línea de venta: cada una genera un movimiento sale (-qty).
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
}
