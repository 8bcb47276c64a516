package repository

import (
	"context"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error)
}
