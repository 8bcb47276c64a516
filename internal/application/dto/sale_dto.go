package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales. Todas las líneas descuentan
// stock en la misma transacción: si una falla, no se persiste nada.
type CreateSaleRequest struct {
	CustomerID  string            `json:"customer_id" validate:"required"`
	WarehouseID string            `json:"warehouse_id" validate:"required"`
	Number      string            `json:"number"`
	Date        time.Time         `json:"date"`
	Items       []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera de venta con líneas.
type SaleResponse struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	WarehouseID string             `json:"warehouse_id"`
	Number      string             `json:"number"`
	Date        time.Time          `json:"date"`
	NetTotal    decimal.Decimal    `json:"net_total"`
	TaxTotal    decimal.Decimal    `json:"tax_total"`
	GrandTotal  decimal.Decimal    `json:"grand_total"`
	Items       []SaleItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}
