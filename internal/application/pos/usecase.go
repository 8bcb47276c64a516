package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// UseCase flujo de punto de venta: abrir ticket, agregar ítems (cada uno
// descuenta stock en el momento), cerrar o anular. La cabecera del ticket se
// bloquea al mutarla para que dos cajas no toquen el mismo ticket a la vez.
type UseCase struct {
	tx     stock.TxRunner
	engine *stock.Engine
}

// NewUseCase construye el caso de uso de POS.
func NewUseCase(tx stock.TxRunner, engine *stock.Engine) *UseCase {
	return &UseCase{tx: tx, engine: engine}
}

// Open abre un ticket vacío.
func (uc *UseCase) Open(ctx context.Context, userID string, in dto.OpenPOSRequest) (*dto.POSResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	ticket := &entity.POSTransaction{
		ID:          uuid.NewString(),
		WarehouseID: in.WarehouseID,
		CustomerID:  in.CustomerID,
		Status:      entity.POSStatusOpen,
		NetTotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		GrandTotal:  decimal.Zero,
		CreatedBy:   userID,
	}
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		return tx.POS.Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ticket, nil), nil
}

// AddItem agrega un ítem al ticket abierto y descuenta el stock.
func (uc *UseCase) AddItem(ctx context.Context, userID, ticketID string, in dto.AddPOSItemRequest) (*dto.POSResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		ticket *entity.POSTransaction
		items  []*entity.POSItem
	)
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		ticket, err = tx.POS.GetByIDForUpdate(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status != entity.POSStatusOpen {
			return domain.ErrConflict
		}
		product, err := tx.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		if _, err := uc.engine.IssueTx(ctx, tx, stock.IssueInput{
			ProductID:     in.ProductID,
			WarehouseID:   ticket.WarehouseID,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceTypePOS,
			ReferenceID:   ticket.ID,
			ActorID:       userID,
		}); err != nil {
			return err
		}

		subtotal := in.Quantity.Mul(product.Price)
		item := &entity.POSItem{
			ID:            uuid.NewString(),
			TransactionID: ticket.ID,
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			UnitPrice:     product.Price,
			TaxRate:       product.TaxRate,
			Subtotal:      subtotal,
		}
		if err := tx.POS.CreateItem(ctx, item); err != nil {
			return err
		}

		ticket.NetTotal = ticket.NetTotal.Add(subtotal)
		ticket.TaxTotal = ticket.TaxTotal.Add(subtotal.Mul(product.TaxRate))
		ticket.GrandTotal = ticket.NetTotal.Add(ticket.TaxTotal)
		if err := tx.POS.Update(ctx, ticket); err != nil {
			return err
		}
		items, err = tx.POS.GetItems(ctx, ticket.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ticket, items), nil
}

// Close cierra y cobra el ticket. Asigna número de recibo y lo vuelve inmutable.
func (uc *UseCase) Close(ctx context.Context, ticketID string, in dto.ClosePOSRequest) (*dto.POSResponse, error) {
	if in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		ticket *entity.POSTransaction
		items  []*entity.POSItem
	)
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		ticket, err = tx.POS.GetByIDForUpdate(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status != entity.POSStatusOpen {
			return domain.ErrConflict
		}
		items, err = tx.POS.GetItems(ctx, ticket.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrInvalidInput
		}
		now := time.Now()
		ticket.Status = entity.POSStatusClosed
		ticket.PaymentMethod = in.PaymentMethod
		ticket.ReceiptNumber = fmt.Sprintf("POS-%s", now.Format("20060102-150405"))
		ticket.ClosedAt = &now
		return tx.POS.Update(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ticket, items), nil
}

// Void anula un ticket abierto devolviendo al stock todos sus ítems.
func (uc *UseCase) Void(ctx context.Context, userID, ticketID string) (*dto.POSResponse, error) {
	var ticket *entity.POSTransaction
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		ticket, err = tx.POS.GetByIDForUpdate(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status != entity.POSStatusOpen {
			return domain.ErrConflict
		}
		items, err := tx.POS.GetItems(ctx, ticket.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.engine.ReverseTx(ctx, tx, stock.ReverseInput{
				ReferenceID:   ticket.ID,
				ReferenceType: entity.ReferenceTypePOS,
				ProductID:     item.ProductID,
				WarehouseID:   ticket.WarehouseID,
				Quantity:      item.Quantity,
				Reason:        "anulación de ticket",
				ActorID:       userID,
			}); err != nil {
				return err
			}
		}
		ticket.Status = entity.POSStatusVoided
		return tx.POS.Update(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ticket, nil), nil
}

// GetByID devuelve un ticket con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.POSResponse, error) {
	var (
		ticket *entity.POSTransaction
		items  []*entity.POSItem
	)
	err := uc.tx.Run(ctx, func(tx stock.RepoSet) error {
		var err error
		ticket, err = tx.POS.GetByID(ctx, id)
		if err != nil {
			return err
		}
		items, err = tx.POS.GetItems(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ticket, items), nil
}

func toResponse(t *entity.POSTransaction, items []*entity.POSItem) *dto.POSResponse {
	resp := &dto.POSResponse{
		ID:            t.ID,
		WarehouseID:   t.WarehouseID,
		CustomerID:    t.CustomerID,
		ReceiptNumber: t.ReceiptNumber,
		Status:        t.Status,
		NetTotal:      t.NetTotal,
		TaxTotal:      t.TaxTotal,
		GrandTotal:    t.GrandTotal,
		PaymentMethod: t.PaymentMethod,
		CreatedAt:     t.CreatedAt,
		ClosedAt:      t.ClosedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.POSItemResponse{
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
