package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Cost es promedio ponderado calculado desde las compras; el stock se maneja
// por bodega en StockLevel y solo lo muta el motor de stock.
type Product struct {
	ID           string
	SKU          string // código único / código de barras
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxRate      decimal.Decimal // 0, 0.05, 0.19
	UnitMeasure  string
	ReorderPoint decimal.Decimal // umbral de stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
