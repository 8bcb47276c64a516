package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRecord devolución de cliente contra una venta original. La cantidad
// devuelta acumulada por (venta, producto) nunca supera lo vendido.
type ReturnRecord struct {
	ID          string
	SaleID      string // venta original contra la que se devuelve
	WarehouseID string
	Reason      string
	CreatedBy   string
	CreatedAt   time.Time
}

// ReturnItem línea devuelta: genera un movimiento return (+qty) referenciando
// la venta original para el control de sobre-devolución.
type ReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal
}
