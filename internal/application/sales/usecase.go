package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// UseCase confirma ventas: cabecera, líneas y descuento de stock de todas las
// líneas en una sola transacción. Stock insuficiente en cualquier línea
// revierte la venta completa.
type UseCase struct {
	tx           stock.TxRunner
	engine       *stock.Engine
	customerRepo repository.CustomerRepository
	maxRetries   int
	retryBackoff time.Duration
}

// NewUseCase construye el caso de uso de ventas. maxRetries reintenta la
// transacción completa cuando hay contención de bloqueos (domain.ErrBusy).
func NewUseCase(tx stock.TxRunner, engine *stock.Engine, customerRepo repository.CustomerRepository, maxRetries int, retryBackoff time.Duration) *UseCase {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &UseCase{tx: tx, engine: engine, customerRepo: customerRepo, maxRetries: maxRetries, retryBackoff: retryBackoff}
}

// Create confirma una venta.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.customerRepo.GetByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	var (
		sale  *entity.Sale
		items []*entity.SaleItem
		err   error
	)
	for attempt := 0; ; attempt++ {
		sale, items, err = uc.createOnce(ctx, userID, in)
		if err == nil || !errors.Is(err, domain.ErrBusy) || attempt >= uc.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(uc.retryBackoff * time.Duration(attempt+1)):
		}
	}
	if err != nil {
		return nil, err
	}
	return toResponse(sale, items), nil
}

func (uc *UseCase) createOnce(ctx context.Context, userID string, in dto.CreateSaleRequest) (*entity.Sale, []*entity.SaleItem, error) {
	sale := &entity.Sale{
		ID:          uuid.NewString(),
		CustomerID:  in.CustomerID,
		WarehouseID: in.WarehouseID,
		Number:      in.Number,
		Date:        in.Date,
		CreatedBy:   userID,
	}
	var items []*entity.SaleItem

	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		net := decimal.Zero
		tax := decimal.Zero
		for _, line := range in.Items {
			product, err := tx.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			if _, err := uc.engine.IssueTx(ctx, tx, stock.IssueInput{
				ProductID:     line.ProductID,
				WarehouseID:   in.WarehouseID,
				Quantity:      line.Quantity,
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   sale.ID,
				ActorID:       userID,
			}); err != nil {
				return err
			}

			subtotal := line.Quantity.Mul(product.Price)
			items = append(items, &entity.SaleItem{
				ID:        uuid.NewString(),
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				TaxRate:   product.TaxRate,
				Subtotal:  subtotal,
			})
			net = net.Add(subtotal)
			tax = tax.Add(subtotal.Mul(product.TaxRate))
		}

		sale.NetTotal = net
		sale.TaxTotal = tax
		sale.GrandTotal = net.Add(tax)
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

// GetByID devuelve una venta con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	var (
		sale  *entity.Sale
		items []*entity.SaleItem
	)
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		sale, err = tx.Sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		items, err = tx.Sales.GetItems(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, items), nil
}

// List devuelve ventas paginadas sin líneas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	var sales []*entity.Sale
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		sales, err = tx.Sales.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toResponse(s, nil))
	}
	return out, nil
}

func toResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		WarehouseID: s.WarehouseID,
		Number:      s.Number,
		Date:        s.Date,
		NetTotal:    s.NetTotal,
		TaxTotal:    s.TaxTotal,
		GrandTotal:  s.GrandTotal,
		CreatedAt:   s.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
