package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenPOSRequest body para POST /api/pos. Abre un ticket vacío en caja.
type OpenPOSRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	CustomerID  string `json:"customer_id"`
}

// AddPOSItemRequest body para POST /api/pos/:id/items. Descuenta stock al
// agregar: el ítem escaneado ya está reservado para el ticket.
type AddPOSItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ClosePOSRequest body para POST /api/pos/:id/close.
type ClosePOSRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card transfer"`
}

// POSItemResponse ítem de ticket.
type POSItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// POSResponse ticket POS con ítems.
type POSResponse struct {
	ID            string            `json:"id"`
	WarehouseID   string            `json:"warehouse_id"`
	CustomerID    string            `json:"customer_id,omitempty"`
	ReceiptNumber string            `json:"receipt_number,omitempty"`
	Status        string            `json:"status"`
	NetTotal      decimal.Decimal   `json:"net_total"`
	TaxTotal      decimal.Decimal   `json:"tax_total"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Items         []POSItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ClosedAt      *time.Time        `json:"closed_at,omitempty"`
}
