package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WastageRecord registro de merma (producto dañado, vencido, perdido).
// Genera un movimiento wastage (-qty) con motivo obligatorio.
type WastageRecord struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Reason      string
	CreatedBy   string
	CreatedAt   time.Time
}
