package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo cerrado de movimiento de stock.
type MovementType string

const (
	MovementTypePurchase   MovementType = "purchase"   // entrada por compra
	MovementTypeSale       MovementType = "sale"       // salida por venta / POS
	MovementTypeAdjustment MovementType = "adjustment" // ajuste manual (+/-)
	MovementTypeReturn     MovementType = "return"     // devolución (entrada)
	MovementTypeWastage    MovementType = "wastage"    // merma / desperdicio
	MovementTypeTransfer   MovementType = "transfer"   // traslado entre bodegas
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeAdjustment,
		MovementTypeReturn, MovementTypeWastage, MovementTypeTransfer:
		return true
	}
	return false
}

// ReferenceType documento de negocio que originó el movimiento.
type ReferenceType string

const (
	ReferenceTypePurchase   ReferenceType = "purchase"
	ReferenceTypeSale       ReferenceType = "sale"
	ReferenceTypePOS        ReferenceType = "pos"
	ReferenceTypeReturn     ReferenceType = "return"
	ReferenceTypeWastage    ReferenceType = "wastage"
	ReferenceTypeAdjustment ReferenceType = "adjustment"
)

// StockMovement registro inmutable de auditoría (append-only). La suma de
// QuantityDelta por producto reconstruye el StockLevel en cualquier instante.
type StockMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	Type          MovementType
	QuantityDelta decimal.Decimal // positivo entrada, negativo salida
	ReferenceType ReferenceType
	ReferenceID   string // ID del documento de negocio (compra, venta, devolución...)
	Reason        string // obligatorio para adjustment y wastage
	CreatedBy     string // UserID
	CreatedAt     time.Time
}
