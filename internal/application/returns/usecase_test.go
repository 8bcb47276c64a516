package returns_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/returns"
	"github.com/tu-usuario/stockpos-backend/internal/application/sales"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

const (
	productID   = "prod-1"
	warehouseID = "bodega-1"
	customerID  = "cliente-1"
	userID      = "user-1"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// setup crea una venta real de 10 unidades y devuelve el usecase de
// devoluciones sobre el mismo almacén.
func setup(t *testing.T) (*returns.UseCase, *stocktest.Store, string) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedCustomer(entity.Customer{ID: customerID, Name: "Cliente"})
	store.SeedProduct(entity.Product{ID: productID, SKU: "P-1", Name: "Aceite 1L", Price: dec(20)})
	store.SeedLevel(productID, warehouseID, dec(50))

	runner := stocktest.NewRunner(store)
	engine := stock.NewEngine(runner)

	saleUC := sales.NewUseCase(runner, engine, store.Customers(), 0, time.Millisecond)
	sale, err := saleUC.Create(context.Background(), userID, dto.CreateSaleRequest{
		CustomerID:  customerID,
		WarehouseID: warehouseID,
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: dec(10)}},
	})
	require.NoError(t, err)
	require.True(t, store.Quantity(productID, warehouseID).Equal(dec(40)))

	return returns.NewUseCase(runner, engine), store, sale.ID
}

func returnOf(saleID string, qty int64) dto.CreateReturnRequest {
	return dto.CreateReturnRequest{
		SaleID:      saleID,
		WarehouseID: warehouseID,
		Reason:      "producto defectuoso",
		Items:       []dto.ReturnItemRequest{{ProductID: productID, Quantity: dec(qty)}},
	}
}

func TestCreate_DevuelveStockAlmacen(t *testing.T) {
	uc, store, saleID := setup(t)

	resp, err := uc.Create(context.Background(), userID, returnOf(saleID, 4))
	require.NoError(t, err)
	assert.Equal(t, saleID, resp.SaleID)
	require.Len(t, resp.Items, 1)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(44)))
}

// El acumulado devuelto por (venta, producto) nunca supera lo vendido, ni en
// una sola devolución ni repartido en varias.
func TestCreate_RechazaSobreDevolucion(t *testing.T) {
	uc, store, saleID := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, returnOf(saleID, 11))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverReturn)

	var over *domain.OverReturnError
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Issued.Equal(dec(10)))
	assert.True(t, over.Requested.Equal(dec(11)))

	// 6 + 5 > 10: la segunda debe rechazarse con el acumulado.
	_, err = uc.Create(ctx, userID, returnOf(saleID, 6))
	require.NoError(t, err)
	_, err = uc.Create(ctx, userID, returnOf(saleID, 5))
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Returned.Equal(dec(6)))

	// El saldo exacto de 4 sí procede.
	_, err = uc.Create(ctx, userID, returnOf(saleID, 4))
	require.NoError(t, err)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(50)))
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, _, saleID := setup(t)
	ctx := context.Background()

	req := returnOf(saleID, 1)
	req.Reason = ""
	_, err := uc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo obligatorio")

	req = returnOf(saleID, 1)
	req.WarehouseID = "otra-bodega"
	_, err = uc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la bodega debe ser la de la venta original")

	_, err = uc.Create(ctx, userID, returnOf("venta-fantasma", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
