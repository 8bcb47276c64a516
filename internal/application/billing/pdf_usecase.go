package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible de ventas y tickets POS.
type PDFUseCase struct {
	saleRepo     repository.SaleRepository
	posRepo      repository.POSTransactionRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    PDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	posRepo repository.POSTransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo:     saleRepo,
		posRepo:      posRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// SalePDF genera el PDF de una venta confirmada.
func (uc *PDFUseCase) SalePDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(ctx, sale.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	items, err := uc.saleRepo.GetItems(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	lines := make([]DocumentLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, DocumentLine{
			Description: uc.productName(ctx, it.ProductID),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	pdfBytes, err = uc.generator.GenerateSalePDF(ctx, sale, customer, lines)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("venta-%s.pdf", sale.Number), nil
}

// ReceiptPDF genera el recibo de un ticket POS cerrado.
func (uc *PDFUseCase) ReceiptPDF(ctx context.Context, ticketID string) (pdfBytes []byte, filename string, err error) {
	ticket, err := uc.posRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ticket: %w", err)
	}
	if ticket.Status != entity.POSStatusClosed {
		return nil, "", fmt.Errorf("%w: el ticket está en estado %s", domain.ErrInvalidInput, ticket.Status)
	}
	items, err := uc.posRepo.GetItems(ctx, ticketID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ítems: %w", err)
	}
	lines := make([]DocumentLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, DocumentLine{
			Description: uc.productName(ctx, it.ProductID),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, ticket, lines)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("recibo-%s.pdf", ticket.ReceiptNumber), nil
}

func (uc *PDFUseCase) productName(ctx context.Context, productID string) string {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return productID
	}
	return product.Name
}
