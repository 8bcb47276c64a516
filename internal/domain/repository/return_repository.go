package repository

import (
	"context"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// ReturnRepository puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.ReturnRecord) error
	CreateItem(ctx context.Context, item *entity.ReturnItem) error
	GetByID(ctx context.Context, id string) (*entity.ReturnRecord, error)
	GetItems(ctx context.Context, returnID string) ([]*entity.ReturnItem, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.ReturnRecord, error)
}
