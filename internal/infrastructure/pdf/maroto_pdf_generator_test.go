package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/billing"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/infrastructure/pdf"
)

func docLines() []billing.DocumentLine {
	return []billing.DocumentLine{
		{
			Description: "Café 500g",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(15000),
			TaxRate:     decimal.NewFromFloat(0.19),
			Subtotal:    decimal.NewFromInt(30000),
		},
		{
			Description: "Panela en bloque",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(4500),
			Subtotal:    decimal.NewFromInt(4500),
		},
	}
}

func TestGenerateSalePDF(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator("Tienda La Esquina")

	sale := &entity.Sale{
		ID:         "venta-1",
		Number:     "V-0001",
		Date:       time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC),
		NetTotal:   decimal.NewFromInt(34500),
		TaxTotal:   decimal.NewFromInt(5700),
		GrandTotal: decimal.NewFromInt(40200),
	}
	customer := &entity.Customer{Name: "Carlos Pérez", TaxID: "900123456"}

	out, err := gen.GenerateSalePDF(context.Background(), sale, customer, docLines())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "la salida debe ser un PDF válido")
}

func TestGenerateReceiptPDF(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator("Tienda La Esquina")

	closedAt := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	ticket := &entity.POSTransaction{
		ID:            "pos-1",
		ReceiptNumber: "POS-20250310-183000",
		Status:        entity.POSStatusClosed,
		NetTotal:      decimal.NewFromInt(34500),
		TaxTotal:      decimal.NewFromInt(5700),
		GrandTotal:    decimal.NewFromInt(40200),
		PaymentMethod: "cash",
		ClosedAt:      &closedAt,
	}

	out, err := gen.GenerateReceiptPDF(context.Background(), ticket, docLines())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
