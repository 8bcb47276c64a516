package purchases_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/purchases"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

const (
	productID   = "prod-1"
	warehouseID = "bodega-1"
	vendorID    = "proveedor-1"
	userID      = "user-1"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newPurchaseUC(t *testing.T) (*purchases.UseCase, *stocktest.Store) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedVendor(entity.Vendor{ID: vendorID, Name: "Proveedor de Prueba"})
	store.SeedWarehouse(entity.Warehouse{ID: warehouseID, Name: "Bodega Principal"})
	store.SeedProduct(entity.Product{
		ID: productID, SKU: "P-1", Name: "Harina 1kg",
		TaxRate: decimal.NewFromFloat(0.19),
	})

	runner := stocktest.NewRunner(store)
	engine := stock.NewEngine(runner)
	return purchases.NewUseCase(runner, engine, store.Vendors(), store.Warehouses()), store
}

func purchaseOf(qty, unitCost int64) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		VendorID:    vendorID,
		WarehouseID: warehouseID,
		Items: []dto.PurchaseItemRequest{
			{ProductID: productID, Quantity: dec(qty), UnitCost: dec(unitCost)},
		},
	}
}

func TestCreate_RegistraEntradaYTotales(t *testing.T) {
	uc, store := newPurchaseUC(t)

	resp, err := uc.Create(context.Background(), userID, purchaseOf(10, 100))
	require.NoError(t, err)

	assert.True(t, resp.NetTotal.Equal(dec(1000)))
	assert.True(t, resp.TaxTotal.Equal(dec(190)))
	assert.True(t, resp.GrandTotal.Equal(dec(1190)))
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(10)))

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchase, movs[0].Type)
	assert.True(t, movs[0].QuantityDelta.Equal(dec(10)))
}

// Con stock previo cero el costo promedio es directamente el de la compra;
// compras sucesivas lo ponderan por cantidades.
func TestCreate_CostoPromedioPonderado(t *testing.T) {
	uc, store := newPurchaseUC(t)
	ctx := context.Background()

	// 10 unidades a $100 → costo 100.
	_, err := uc.Create(ctx, userID, purchaseOf(10, 100))
	require.NoError(t, err)
	p, _ := store.Product(productID)
	assert.True(t, p.Cost.Equal(dec(100)), "primer costo: %s", p.Cost)

	// +30 unidades a $140 → (10×100 + 30×140) / 40 = 130.
	_, err = uc.Create(ctx, userID, purchaseOf(30, 140))
	require.NoError(t, err)
	p, _ = store.Product(productID)
	assert.True(t, p.Cost.Equal(dec(130)), "costo ponderado: %s", p.Cost)

	// +1 unidad a $70 → (40×130 + 70) / 41 = 128.5366 (4 decimales).
	_, err = uc.Create(ctx, userID, purchaseOf(1, 70))
	require.NoError(t, err)
	p, _ = store.Product(productID)
	want := decimal.RequireFromString("128.5366")
	assert.True(t, p.Cost.Equal(want), "costo redondeado: %s", p.Cost)
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, store := newPurchaseUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, dto.CreatePurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, userID, dto.CreatePurchaseRequest{
		VendorID:    "proveedor-fantasma",
		WarehouseID: warehouseID,
		Items:       []dto.PurchaseItemRequest{{ProductID: productID, Quantity: dec(1), UnitCost: dec(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, userID, purchaseOf(0, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req := purchaseOf(1, 10)
	req.Items[0].UnitCost = dec(-5)
	_, err = uc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "costo negativo")

	req = purchaseOf(1, 10)
	req.Items[0].ProductID = "prod-fantasma"
	_, err = uc.Create(ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Empty(t, store.Movements(), "ninguna compra inválida debe dejar rastro")
}
