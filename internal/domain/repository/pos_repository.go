package repository

import (
	"context"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// POSTransactionRepository puerto de persistencia para tickets POS.
type POSTransactionRepository interface {
	Create(ctx context.Context, tx *entity.POSTransaction) error
	GetByID(ctx context.Context, id string) (*entity.POSTransaction, error)
	// GetByIDForUpdate bloquea la cabecera del ticket mientras se agregan
	// ítems o se cierra, para que dos cajas no muten el mismo ticket a la vez.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.POSTransaction, error)
	Update(ctx context.Context, tx *entity.POSTransaction) error
	CreateItem(ctx context.Context, item *entity.POSItem) error
	GetItems(ctx context.Context, transactionID string) ([]*entity.POSItem, error)
}
