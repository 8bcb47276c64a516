package returns

import (
	"context"

	"github.com/google/uuid"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// UseCase registra devoluciones de cliente contra una venta original. El
// acumulado devuelto por (venta, producto) nunca supera lo vendido; la
// verificación ocurre bajo el bloqueo de la fila de stock.
type UseCase struct {
	tx     stock.TxRunner
	engine *stock.Engine
}

// NewUseCase construye el caso de uso de devoluciones.
func NewUseCase(tx stock.TxRunner, engine *stock.Engine) *UseCase {
	return &UseCase{tx: tx, engine: engine}
}

// Create registra una devolución completa en una transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.SaleID == "" || in.WarehouseID == "" || in.Reason == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	record := &entity.ReturnRecord{
		ID:          uuid.NewString(),
		SaleID:      in.SaleID,
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
		CreatedBy:   userID,
	}
	var items []*entity.ReturnItem

	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		sale, err := tx.Sales.GetByID(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if sale.WarehouseID != in.WarehouseID {
			return domain.ErrInvalidInput
		}
		for _, line := range in.Items {
			if _, err := uc.engine.ReverseTx(ctx, tx, stock.ReverseInput{
				ReferenceID:   in.SaleID,
				ReferenceType: entity.ReferenceTypeSale,
				ProductID:     line.ProductID,
				WarehouseID:   in.WarehouseID,
				Quantity:      line.Quantity,
				Reason:        in.Reason,
				ActorID:       userID,
			}); err != nil {
				return err
			}
			items = append(items, &entity.ReturnItem{
				ID:        uuid.NewString(),
				ReturnID:  record.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		if err := tx.Returns.Create(ctx, record); err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Returns.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(record, items), nil
}

// GetByID devuelve una devolución con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	var (
		record *entity.ReturnRecord
		items  []*entity.ReturnItem
	)
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		record, err = tx.Returns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		items, err = tx.Returns.GetItems(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(record, items), nil
}

// ListBySale devoluciones registradas contra una venta.
func (uc *UseCase) ListBySale(ctx context.Context, saleID string) ([]dto.ReturnResponse, error) {
	var records []*entity.ReturnRecord
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		records, err = tx.Returns.ListBySale(ctx, saleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *toResponse(r, nil))
	}
	return out, nil
}

func toResponse(r *entity.ReturnRecord, items []*entity.ReturnItem) *dto.ReturnResponse {
	resp := &dto.ReturnResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		WarehouseID: r.WarehouseID,
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.ReturnItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return resp
}
