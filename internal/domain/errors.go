package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto sin registro de stock")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrReasonRequired     = errors.New("motivo obligatorio")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOverReturn         = errors.New("devolución excede lo vendido")
	ErrBusy               = errors.New("recurso ocupado, reintentar")
)

// InsufficientStockError detalla un rechazo por stock insuficiente: el caller
// necesita el stock actual y el solicitado para construir un mensaje útil.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Current     decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %s, solicitado %s",
		e.ProductID, e.Current.String(), e.Requested.String())
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// OverReturnError detalla un rechazo por devolución mayor a lo vendido
// contra una misma referencia (venta original).
type OverReturnError struct {
	ReferenceID string
	ProductID   string
	Issued      decimal.Decimal
	Returned    decimal.Decimal
	Requested   decimal.Decimal
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("devolución excede lo vendido en referencia %s (producto %s): vendido %s, ya devuelto %s, solicitado %s",
		e.ReferenceID, e.ProductID, e.Issued.String(), e.Returned.String(), e.Requested.String())
}

// Is permite errors.Is(err, domain.ErrOverReturn).
func (e *OverReturnError) Is(target error) bool {
	return target == ErrOverReturn
}
