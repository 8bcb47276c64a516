package wastage

import (
	"context"

	"github.com/google/uuid"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// UseCase registra mermas (producto dañado, vencido, perdido). El registro y
// la salida de stock ocurren en la misma transacción.
type UseCase struct {
	tx     stock.TxRunner
	engine *stock.Engine
}

// NewUseCase construye el caso de uso de mermas.
func NewUseCase(tx stock.TxRunner, engine *stock.Engine) *UseCase {
	return &UseCase{tx: tx, engine: engine}
}

// Create registra una merma.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateWastageRequest) (*dto.WastageResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return nil, domain.ErrReasonRequired
	}

	record := &entity.WastageRecord{
		ID:          uuid.NewString(),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		CreatedBy:   userID,
	}
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		if _, err := uc.engine.IssueTx(ctx, tx, stock.IssueInput{
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceTypeWastage,
			ReferenceID:   record.ID,
			Reason:        in.Reason,
			ActorID:       userID,
		}); err != nil {
			return err
		}
		return tx.Wastage.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(record), nil
}

// GetByID devuelve un registro de merma.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.WastageResponse, error) {
	var record *entity.WastageRecord
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		record, err = tx.Wastage.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(record), nil
}

// List devuelve mermas paginadas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.WastageResponse, error) {
	page.DefaultPage()
	var records []*entity.WastageRecord
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		records, err = tx.Wastage.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.WastageResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *toResponse(r))
	}
	return out, nil
}

func toResponse(r *entity.WastageRecord) *dto.WastageResponse {
	return &dto.WastageResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		Quantity:    r.Quantity,
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
}
