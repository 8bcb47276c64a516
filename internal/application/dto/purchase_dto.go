package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest body para POST /api/purchases. Confirmar la compra
// registra las entradas de stock de todas las líneas en una sola transacción.
type CreatePurchaseRequest struct {
	VendorID    string                `json:"vendor_id" validate:"required"`
	WarehouseID string                `json:"warehouse_id" validate:"required"`
	Number      string                `json:"number"`
	Date        time.Time             `json:"date"`
	Notes       string                `json:"notes"`
	Items       []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseItemResponse línea de compra persistida.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse cabecera de compra con líneas.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	VendorID    string                 `json:"vendor_id"`
	WarehouseID string                 `json:"warehouse_id"`
	Number      string                 `json:"number"`
	Date        time.Time              `json:"date"`
	NetTotal    decimal.Decimal        `json:"net_total"`
	TaxTotal    decimal.Decimal        `json:"tax_total"`
	GrandTotal  decimal.Decimal        `json:"grand_total"`
	Notes       string                 `json:"notes,omitempty"`
	Items       []PurchaseItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}
