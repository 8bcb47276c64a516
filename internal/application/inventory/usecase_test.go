package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/inventory"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

const (
	productID   = "prod-1"
	warehouseID = "bodega-1"
	userID      = "user-1"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newInventoryUC(t *testing.T) (*inventory.UseCase, *stock.Engine, *stocktest.Store) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedProduct(entity.Product{ID: productID, SKU: "P-1", Name: "Arroz 5kg"})
	runner := stocktest.NewRunner(store)
	engine := stock.NewEngine(runner)
	repos := store.Repos()
	uc := inventory.NewUseCase(engine, nil, repos.Movements, repos.Levels)
	return uc, engine, store
}

func TestAdjust_AplicaDeltaConMotivo(t *testing.T) {
	uc, _, store := newInventoryUC(t)

	resp, err := uc.Adjust(context.Background(), userID, productID, dto.AdjustStockRequest{
		WarehouseID: warehouseID,
		Delta:       dec(12),
		Reason:      "carga inicial",
	})
	require.NoError(t, err)
	assert.True(t, resp.Quantity.Equal(dec(12)))
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(12)))

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Type)
	assert.Equal(t, "carga inicial", movs[0].Reason)
	assert.Equal(t, userID, movs[0].CreatedBy)
}

func TestGetLevel_SinFilaReportaCero(t *testing.T) {
	uc, _, _ := newInventoryUC(t)

	resp, err := uc.GetLevel(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	assert.True(t, resp.Quantity.IsZero())
	assert.Equal(t, productID, resp.ProductID)
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	uc, engine, _ := newInventoryUC(t)
	ctx := context.Background()

	for _, delta := range []int64{10, 5, 3} {
		_, err := engine.Adjust(ctx, stock.AdjustInput{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Delta:       dec(delta),
			Reason:      "conteo",
		})
		require.NoError(t, err)
	}

	movs, err := uc.History(ctx, productID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.True(t, movs[0].QuantityDelta.Equal(dec(3)), "el último movimiento va primero")
	assert.True(t, movs[1].QuantityDelta.Equal(dec(5)))
}

// Reconcile detecta divergencias entre la cantidad absoluta y el libro.
func TestReconcile(t *testing.T) {
	uc, engine, store := newInventoryUC(t)
	ctx := context.Background()

	_, err := engine.Adjust(ctx, stock.AdjustInput{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Delta:       dec(30),
		Reason:      "carga inicial",
	})
	require.NoError(t, err)

	resp, err := uc.Reconcile(ctx, productID, warehouseID)
	require.NoError(t, err, "libro y cantidad coinciden tras pasar por el motor")
	assert.True(t, resp.Quantity.Equal(dec(30)))

	// Corromper la cantidad por fuera del motor debe detectarse.
	store.SeedLevel(productID, warehouseID, dec(31))
	_, err = uc.Reconcile(ctx, productID, warehouseID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
