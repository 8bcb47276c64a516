package repository

import (
	"context"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// StockLevelRepository puerto de persistencia para el stock actual por
// (producto, bodega). Las escrituras ocurren únicamente dentro del motor de
// stock bajo transacción; Get devuelve nil (sin error) si la fila no existe.
type StockLevelRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para la secuencia
	// leer-validar-escribir del motor. nil si la fila no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(ctx context.Context, level *entity.StockLevel) error
	// Create inserta la fila inicial (cantidad 0) al crear el producto.
	Create(ctx context.Context, level *entity.StockLevel) error
	// CreateIfMissing materializa la fila en 0 si aún no existe (bodega
	// nueva), sin tocar la cantidad si ya existe. Permite que GetForUpdate
	// siempre tenga una fila que bloquear.
	CreateIfMissing(ctx context.Context, productID, warehouseID string) error
}
