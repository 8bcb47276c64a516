package pos_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/pos"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

const (
	productID   = "prod-1"
	warehouseID = "bodega-1"
	userID      = "cajero-1"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newPOSUC(t *testing.T) (*pos.UseCase, *stocktest.Store) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedProduct(entity.Product{
		ID: productID, SKU: "P-1", Name: "Gaseosa 400ml",
		Price: dec(10), TaxRate: decimal.NewFromFloat(0.19),
	})
	store.SeedLevel(productID, warehouseID, dec(20))

	runner := stocktest.NewRunner(store)
	return pos.NewUseCase(runner, stock.NewEngine(runner)), store
}

func openTicket(t *testing.T, uc *pos.UseCase) string {
	t.Helper()
	resp, err := uc.Open(context.Background(), userID, dto.OpenPOSRequest{WarehouseID: warehouseID})
	require.NoError(t, err)
	require.Equal(t, entity.POSStatusOpen, resp.Status)
	return resp.ID
}

func addItem(t *testing.T, uc *pos.UseCase, ticketID string, qty int64) *dto.POSResponse {
	t.Helper()
	resp, err := uc.AddItem(context.Background(), userID, ticketID, dto.AddPOSItemRequest{
		ProductID: productID,
		Quantity:  dec(qty),
	})
	require.NoError(t, err)
	return resp
}

// Flujo completo: abrir, agregar ítems (descuentan al momento), cerrar.
func TestPOS_FlujoAbrirAgregarCerrar(t *testing.T) {
	uc, store := newPOSUC(t)
	ticketID := openTicket(t, uc)

	resp := addItem(t, uc, ticketID, 3)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(17)),
		"agregar un ítem descuenta stock inmediatamente")
	assert.True(t, resp.NetTotal.Equal(dec(30)))

	resp = addItem(t, uc, ticketID, 2)
	assert.True(t, resp.NetTotal.Equal(dec(50)))
	assert.True(t, resp.GrandTotal.Equal(decimal.RequireFromString("59.5")), "50 + 19%% IVA")
	require.Len(t, resp.Items, 2)

	closed, err := uc.Close(context.Background(), ticketID, dto.ClosePOSRequest{PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.POSStatusClosed, closed.Status)
	assert.True(t, strings.HasPrefix(closed.ReceiptNumber, "POS-"), "recibo: %s", closed.ReceiptNumber)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, "cash", closed.PaymentMethod)
}

// Un ticket cerrado es inmutable: agregar ítems, cerrarlo de nuevo o anularlo
// debe fallar con conflicto.
func TestPOS_TicketCerradoEsInmutable(t *testing.T) {
	uc, _ := newPOSUC(t)
	ticketID := openTicket(t, uc)
	addItem(t, uc, ticketID, 1)

	_, err := uc.Close(context.Background(), ticketID, dto.ClosePOSRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), userID, ticketID, dto.AddPOSItemRequest{
		ProductID: productID, Quantity: dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Close(context.Background(), ticketID, dto.ClosePOSRequest{PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Void(context.Background(), userID, ticketID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPOS_CerrarTicketVacio(t *testing.T) {
	uc, _ := newPOSUC(t)
	ticketID := openTicket(t, uc)

	_, err := uc.Close(context.Background(), ticketID, dto.ClosePOSRequest{PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cerrar sin ítems no es válido")
}

// Anular un ticket abierto devuelve todo su stock.
func TestPOS_AnularDevuelveStock(t *testing.T) {
	uc, store := newPOSUC(t)
	ticketID := openTicket(t, uc)
	addItem(t, uc, ticketID, 3)
	addItem(t, uc, ticketID, 2)
	require.True(t, store.Quantity(productID, warehouseID).Equal(dec(15)))

	voided, err := uc.Void(context.Background(), userID, ticketID)
	require.NoError(t, err)
	assert.Equal(t, entity.POSStatusVoided, voided.Status)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(20)),
		"la anulación restituye todas las unidades")

	// Los movimientos de reversa deben apuntar al ticket, no a una venta
	var reversals int
	for _, mov := range store.Movements() {
		if mov.Type != entity.MovementTypeReturn {
			continue
		}
		reversals++
		assert.Equal(t, entity.ReferenceTypePOS, mov.ReferenceType)
		assert.Equal(t, ticketID, mov.ReferenceID)
	}
	assert.Equal(t, 2, reversals, "una reversa por renglón del ticket")
}

func TestPOS_AgregarSinStockNoTocaElTicket(t *testing.T) {
	uc, store := newPOSUC(t)
	ticketID := openTicket(t, uc)

	_, err := uc.AddItem(context.Background(), userID, ticketID, dto.AddPOSItemRequest{
		ProductID: productID, Quantity: dec(21),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	ticket, err := uc.GetByID(context.Background(), ticketID)
	require.NoError(t, err)
	assert.Empty(t, ticket.Items)
	assert.True(t, ticket.NetTotal.IsZero())
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(20)))
}
