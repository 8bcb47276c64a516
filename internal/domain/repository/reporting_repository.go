package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// LowStockItem producto por debajo de su punto de reorden (o sin stock).
type LowStockItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
}

// ValuationItem valorización de inventario por producto (cantidad × costo).
type ValuationItem struct {
	ProductID  string
	SKU        string
	Name       string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalValue decimal.Decimal
}

// ReportingRepository consultas de solo lectura sobre stock y movimientos.
// Se ejecutan sobre el pool (sin bloqueos); toleran leer valores levemente
// desfasados respecto a transacciones en vuelo.
type ReportingRepository interface {
	LevelsByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error)
	LevelsByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
	// LowStock productos bajo su punto de reorden; warehouseID vacío agrega
	// el stock de todas las bodegas.
	LowStock(ctx context.Context, warehouseID string) ([]LowStockItem, error)
	OutOfStock(ctx context.Context, warehouseID string) ([]LowStockItem, error)
	Valuation(ctx context.Context, warehouseID string) ([]ValuationItem, error)
}
