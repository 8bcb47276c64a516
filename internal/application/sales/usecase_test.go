package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/sales"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

const (
	prodA       = "prod-a"
	prodB       = "prod-b"
	warehouseID = "bodega-1"
	customerID  = "cliente-1"
	userID      = "user-1"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// newSaleUC prepara un caso de uso de ventas con dos productos: A con 10
// unidades a $100 (IVA 19%) y B con 2 unidades a $50 (sin IVA).
func newSaleUC(t *testing.T) (*sales.UseCase, *stocktest.Store, *stocktest.Runner) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedCustomer(entity.Customer{ID: customerID, Name: "Cliente de Prueba"})
	store.SeedProduct(entity.Product{
		ID: prodA, SKU: "A-1", Name: "Producto A",
		Price: dec(100), TaxRate: decimal.NewFromFloat(0.19),
	})
	store.SeedProduct(entity.Product{
		ID: prodB, SKU: "B-1", Name: "Producto B",
		Price: dec(50),
	})
	store.SeedLevel(prodA, warehouseID, dec(10))
	store.SeedLevel(prodB, warehouseID, dec(2))

	runner := stocktest.NewRunner(store)
	engine := stock.NewEngine(runner)
	uc := sales.NewUseCase(runner, engine, store.Customers(), 3, time.Millisecond)
	return uc, store, runner
}

func saleRequest(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID:  customerID,
		WarehouseID: warehouseID,
		Items:       items,
	}
}

func TestCreate_DescuentaStockYTotaliza(t *testing.T) {
	uc, store, _ := newSaleUC(t)

	resp, err := uc.Create(context.Background(), userID, saleRequest(
		dto.SaleItemRequest{ProductID: prodA, Quantity: dec(3)},
		dto.SaleItemRequest{ProductID: prodB, Quantity: dec(2)},
	))
	require.NoError(t, err)

	// 3×100 + 2×50 = 400 neto; IVA solo sobre A: 300×0.19 = 57.
	assert.True(t, resp.NetTotal.Equal(dec(400)), "neto: %s", resp.NetTotal)
	assert.True(t, resp.TaxTotal.Equal(dec(57)), "IVA: %s", resp.TaxTotal)
	assert.True(t, resp.GrandTotal.Equal(dec(457)), "total: %s", resp.GrandTotal)
	require.Len(t, resp.Items, 2)

	assert.True(t, store.Quantity(prodA, warehouseID).Equal(dec(7)))
	assert.True(t, store.Quantity(prodB, warehouseID).IsZero())
	assert.Equal(t, 1, store.SaleCount())
}

// Si cualquier línea no tiene stock, la venta completa se revierte: ni
// cabecera, ni líneas, ni descuentos parciales de las líneas anteriores.
func TestCreate_LineaSinStockRevierteTodo(t *testing.T) {
	uc, store, _ := newSaleUC(t)

	_, err := uc.Create(context.Background(), userID, saleRequest(
		dto.SaleItemRequest{ProductID: prodA, Quantity: dec(3)},
		dto.SaleItemRequest{ProductID: prodB, Quantity: dec(5)}, // solo hay 2
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, prodB, insufficient.ProductID)
	assert.True(t, insufficient.Current.Equal(dec(2)))

	assert.Equal(t, 0, store.SaleCount(), "la venta no debe persistirse")
	assert.Empty(t, store.Movements(), "ningún movimiento debe quedar registrado")
	assert.True(t, store.Quantity(prodA, warehouseID).Equal(dec(10)),
		"la primera línea debe revertirse junto con la venta")
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, _, _ := newSaleUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, userID, dto.CreateSaleRequest{
		CustomerID:  "cliente-fantasma",
		WarehouseID: warehouseID,
		Items:       []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")

	_, err = uc.Create(ctx, userID, saleRequest(
		dto.SaleItemRequest{ProductID: prodA, Quantity: dec(0)},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// La contención de bloqueos (ErrBusy) se reintenta de forma transparente; al
// liberarse el bloqueo la venta se confirma.
func TestCreate_ReintentaAnteContencion(t *testing.T) {
	uc, store, runner := newSaleUC(t)
	runner.BusyFailures = 2

	resp, err := uc.Create(context.Background(), userID, saleRequest(
		dto.SaleItemRequest{ProductID: prodA, Quantity: dec(1)},
	))
	require.NoError(t, err, "dos fallos por contención y un tercer intento exitoso")
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(119)))
	assert.True(t, store.Quantity(prodA, warehouseID).Equal(dec(9)))
	assert.GreaterOrEqual(t, runner.Calls, 3)
}

// Agotados los reintentos, el error ErrBusy sube al caller (HTTP 503).
func TestCreate_AgotaReintentos(t *testing.T) {
	uc, store, runner := newSaleUC(t)
	runner.BusyFailures = 10

	_, err := uc.Create(context.Background(), userID, saleRequest(
		dto.SaleItemRequest{ProductID: prodA, Quantity: dec(1)},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.True(t, store.Quantity(prodA, warehouseID).Equal(dec(10)))
}
