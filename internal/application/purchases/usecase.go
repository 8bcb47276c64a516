package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// UseCase confirma compras: persiste cabecera y líneas, registra la entrada
// de stock de cada línea y recalcula el costo promedio ponderado, todo en una
// sola transacción. Si cualquier paso falla no queda nada persistido.
type UseCase struct {
	tx         stock.TxRunner
	engine     *stock.Engine
	vendorRepo repository.VendorRepository
	whRepo     repository.WarehouseRepository
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(tx stock.TxRunner, engine *stock.Engine, vendorRepo repository.VendorRepository, whRepo repository.WarehouseRepository) *UseCase {
	return &UseCase{tx: tx, engine: engine, vendorRepo: vendorRepo, whRepo: whRepo}
}

// Create confirma una compra.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.VendorID == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.vendorRepo.GetByID(ctx, in.VendorID); err != nil {
		return nil, err
	}
	if _, err := uc.whRepo.GetByID(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	purchase := &entity.Purchase{
		ID:          uuid.NewString(),
		VendorID:    in.VendorID,
		WarehouseID: in.WarehouseID,
		Number:      in.Number,
		Date:        in.Date,
		Notes:       in.Notes,
		CreatedBy:   userID,
	}
	var items []*entity.PurchaseItem

	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		net := decimal.Zero
		tax := decimal.Zero
		for _, line := range in.Items {
			if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitCost.IsNegative() {
				return domain.ErrInvalidQuantity
			}
			product, err := tx.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			level, err := uc.engine.ReceiveTx(ctx, tx, stock.ReceiveInput{
				ProductID:     line.ProductID,
				WarehouseID:   in.WarehouseID,
				Quantity:      line.Quantity,
				ReferenceType: entity.ReferenceTypePurchase,
				ReferenceID:   purchase.ID,
				ActorID:       userID,
			})
			if err != nil {
				return err
			}

			// Promedio ponderado sobre el stock previo a esta entrada
			prevQty := level.Quantity.Sub(line.Quantity)
			newCost := weightedAverageCost(prevQty, product.Cost, line.Quantity, line.UnitCost)
			if !newCost.Equal(product.Cost) {
				if err := tx.Products.UpdateCost(ctx, product.ID, newCost); err != nil {
					return err
				}
			}

			subtotal := line.Quantity.Mul(line.UnitCost)
			item := &entity.PurchaseItem{
				ID:         uuid.NewString(),
				PurchaseID: purchase.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitCost:   line.UnitCost,
				Subtotal:   subtotal,
			}
			items = append(items, item)
			net = net.Add(subtotal)
			tax = tax.Add(subtotal.Mul(product.TaxRate))
		}

		purchase.NetTotal = net
		purchase.TaxTotal = tax
		purchase.GrandTotal = net.Add(tax)
		if err := tx.Purchases.Create(ctx, purchase); err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Purchases.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(purchase, items), nil
}

// GetByID devuelve una compra con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	var (
		purchase *entity.Purchase
		items    []*entity.PurchaseItem
	)
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		purchase, err = tx.Purchases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		items, err = tx.Purchases.GetItems(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(purchase, items), nil
}

// List devuelve compras paginadas sin líneas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	page.DefaultPage()
	var purchases []*entity.Purchase
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		purchases, err = tx.Purchases.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, *toResponse(p, nil))
	}
	return out, nil
}

// weightedAverageCost calcula el nuevo costo promedio tras recibir qty
// unidades a unitCost. Con stock previo cero (o negativo por datos sucios)
// el costo pasa a ser el de la compra.
func weightedAverageCost(prevQty, prevCost, qty, unitCost decimal.Decimal) decimal.Decimal {
	if !prevQty.GreaterThan(decimal.Zero) {
		return unitCost
	}
	totalQty := prevQty.Add(qty)
	totalValue := prevQty.Mul(prevCost).Add(qty.Mul(unitCost))
	return totalValue.DivRound(totalQty, 4)
}

func toResponse(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		WarehouseID: p.WarehouseID,
		Number:      p.Number,
		Date:        p.Date,
		NetTotal:    p.NetTotal,
		TaxTotal:    p.TaxTotal,
		GrandTotal:  p.GrandTotal,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
