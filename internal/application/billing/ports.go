package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// DocumentLine línea resuelta para imprimir (nombre de producto incluido).
type DocumentLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
}

// PDFGenerator genera los documentos imprimibles del negocio.
type PDFGenerator interface {
	GenerateSalePDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []DocumentLine) ([]byte, error)
	GenerateReceiptPDF(ctx context.Context, ticket *entity.POSTransaction, lines []DocumentLine) ([]byte, error)
}
