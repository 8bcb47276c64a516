package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemRequest línea a devolver contra la venta original.
type ReturnItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateReturnRequest body para POST /api/returns. El acumulado devuelto por
// (venta, producto) nunca puede superar lo vendido.
type CreateReturnRequest struct {
	SaleID      string              `json:"sale_id" validate:"required"`
	WarehouseID string              `json:"warehouse_id" validate:"required"`
	Reason      string              `json:"reason" validate:"required"`
	Items       []ReturnItemRequest `json:"items" validate:"required,min=1"`
}

// ReturnItemResponse línea devuelta persistida.
type ReturnItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ReturnResponse devolución con líneas.
type ReturnResponse struct {
	ID          string               `json:"id"`
	SaleID      string               `json:"sale_id"`
	WarehouseID string               `json:"warehouse_id"`
	Reason      string               `json:"reason"`
	Items       []ReturnItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CreateWastageRequest body para POST /api/wastage. Motivo obligatorio.
type CreateWastageRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason" validate:"required"`
}

// WastageResponse registro de merma.
type WastageResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	CreatedAt   time.Time       `json:"created_at"`
}
