package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust/:productId.
// Delta firmado: positivo suma, negativo descuenta. Motivo obligatorio.
type AdjustStockRequest struct {
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Delta       decimal.Decimal `json:"delta"`
	Reason      string          `json:"reason" validate:"required"`
}

// StockLevelResponse nivel actual de (producto, bodega).
type StockLevelResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Type          string          `json:"type"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LowStockItemResponse producto en o bajo su punto de reorden.
type LowStockItemResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// ValuationItemResponse valorización por producto (cantidad × costo).
type ValuationItemResponse struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ValuationResponse reporte de valorización con total general.
type ValuationResponse struct {
	Items []ValuationItemResponse `json:"items"`
	Total decimal.Decimal         `json:"total"`
}
