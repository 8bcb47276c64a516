package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la cantidad actual de un producto en una bodega.
// Se crea junto al producto (cantidad 0) y solo el motor de stock puede
// escribir Quantity; el invariante es Quantity >= 0 en todo momento.
type StockLevel struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
