package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateCost actualiza el costo promedio ponderado (lo recalcula el
	// productor de compras dentro de la misma transacción).
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
