package repository

import (
	"context"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// WastageRepository puerto de persistencia para registros de merma.
type WastageRepository interface {
	Create(ctx context.Context, record *entity.WastageRecord) error
	GetByID(ctx context.Context, id string) (*entity.WastageRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.WastageRecord, error)
}
