package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// ReferenceTally acumulados de movimientos contra una referencia de negocio,
// usados para el control de sobre-devolución.
type ReferenceTally struct {
	Issued   decimal.Decimal // total salido (valor positivo)
	Returned decimal.Decimal // total devuelto (valor positivo)
}

// StockMovementRepository puerto de persistencia del libro de movimientos
// (append-only: Create es la única escritura; no hay Update ni Delete).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// TallyByReference suma los deltas previos de (referencia, producto):
	// cuánto se vendió y cuánto se ha devuelto ya. Se invoca dentro de la
	// misma transacción bloqueada del motor para que el límite sea estable.
	TallyByReference(ctx context.Context, referenceID, productID string) (ReferenceTally, error)
	// SumDeltaByProduct reconstruye el stock desde el libro (auditoría).
	SumDeltaByProduct(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error)
	// ListByProduct historial paginado, más reciente primero.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
