package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// UseCase consultas de inventario y ajuste manual. Las consultas corren sobre
// el pool sin bloqueos; el ajuste pasa por el motor de stock.
type UseCase struct {
	engine    *stock.Engine
	reporting repository.ReportingRepository
	movements repository.StockMovementRepository
	levels    repository.StockLevelRepository
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(engine *stock.Engine, reporting repository.ReportingRepository, movements repository.StockMovementRepository, levels repository.StockLevelRepository) *UseCase {
	return &UseCase{engine: engine, reporting: reporting, movements: movements, levels: levels}
}

// Adjust aplica un ajuste manual firmado sobre (producto, bodega).
func (uc *UseCase) Adjust(ctx context.Context, userID, productID string, in dto.AdjustStockRequest) (*dto.StockLevelResponse, error) {
	level, err := uc.engine.Adjust(ctx, stock.AdjustInput{
		ProductID:   productID,
		WarehouseID: in.WarehouseID,
		Delta:       in.Delta,
		Reason:      in.Reason,
		ActorID:     userID,
	})
	if err != nil {
		return nil, err
	}
	return toLevelResponse(level), nil
}

// GetLevel devuelve el nivel actual de (producto, bodega). Producto sin fila
// de stock reporta cantidad 0.
func (uc *UseCase) GetLevel(ctx context.Context, productID, warehouseID string) (*dto.StockLevelResponse, error) {
	level, err := uc.levels.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return &dto.StockLevelResponse{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    decimal.Zero,
		}, nil
	}
	return toLevelResponse(level), nil
}

// LevelsByProduct niveles de un producto en todas las bodegas.
func (uc *UseCase) LevelsByProduct(ctx context.Context, productID string) ([]dto.StockLevelResponse, error) {
	levels, err := uc.reporting.LevelsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toLevelResponses(levels), nil
}

// LevelsByWarehouse niveles paginados de una bodega.
func (uc *UseCase) LevelsByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) ([]dto.StockLevelResponse, error) {
	page.DefaultPage()
	levels, err := uc.reporting.LevelsByWarehouse(ctx, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toLevelResponses(levels), nil
}

// History historial de movimientos de un producto, más reciente primero.
func (uc *UseCase) History(ctx context.Context, productID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	movements, err := uc.movements.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          string(m.Type),
			QuantityDelta: m.QuantityDelta,
			ReferenceType: string(m.ReferenceType),
			ReferenceID:   m.ReferenceID,
			Reason:        m.Reason,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// LowStock productos en o bajo su punto de reorden.
func (uc *UseCase) LowStock(ctx context.Context, warehouseID string) ([]dto.LowStockItemResponse, error) {
	items, err := uc.reporting.LowStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toLowStockResponses(items), nil
}

// OutOfStock productos con stock agregado en cero.
func (uc *UseCase) OutOfStock(ctx context.Context, warehouseID string) ([]dto.LowStockItemResponse, error) {
	items, err := uc.reporting.OutOfStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toLowStockResponses(items), nil
}

// Valuation valorización del inventario por producto con total general.
func (uc *UseCase) Valuation(ctx context.Context, warehouseID string) (*dto.ValuationResponse, error) {
	items, err := uc.reporting.Valuation(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ValuationResponse{Total: decimal.Zero}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.ValuationItemResponse{
			ProductID:  it.ProductID,
			SKU:        it.SKU,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
			TotalValue: it.TotalValue,
		})
		resp.Total = resp.Total.Add(it.TotalValue)
	}
	return resp, nil
}

// Reconcile compara la cantidad almacenada contra la suma de deltas del libro
// para (producto, bodega). Una diferencia distinta de cero es corrupción de
// datos y se reporta como domain.ErrConflict.
func (uc *UseCase) Reconcile(ctx context.Context, productID, warehouseID string) (*dto.StockLevelResponse, error) {
	level, err := uc.levels.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	stored := decimal.Zero
	if level != nil {
		stored = level.Quantity
	}
	sum, err := uc.movements.SumDeltaByProduct(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if !stored.Equal(sum) {
		return nil, domain.ErrConflict
	}
	return &dto.StockLevelResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: stored}, nil
}

func toLevelResponse(l *entity.StockLevel) *dto.StockLevelResponse {
	return &dto.StockLevelResponse{
		ProductID:   l.ProductID,
		WarehouseID: l.WarehouseID,
		Quantity:    l.Quantity,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toLevelResponses(levels []*entity.StockLevel) []dto.StockLevelResponse {
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, *toLevelResponse(l))
	}
	return out
}

func toLowStockResponses(items []repository.LowStockItem) []dto.LowStockItemResponse {
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemResponse{
			ProductID:    it.ProductID,
			SKU:          it.SKU,
			ProductName:  it.ProductName,
			CurrentStock: it.CurrentStock,
			ReorderPoint: it.ReorderPoint,
		})
	}
	return out
}
