package wastage_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/application/wastage"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

const (
	productID   = "prod-1"
	warehouseID = "bodega-1"
	userID      = "user-1"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newWastageUC(t *testing.T) (*wastage.UseCase, *stocktest.Store) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedProduct(entity.Product{ID: productID, SKU: "P-1", Name: "Pan tajado"})
	store.SeedLevel(productID, warehouseID, dec(8))
	runner := stocktest.NewRunner(store)
	return wastage.NewUseCase(runner, stock.NewEngine(runner)), store
}

func TestCreate_DescuentaYRegistraMerma(t *testing.T) {
	uc, store := newWastageUC(t)

	resp, err := uc.Create(context.Background(), userID, dto.CreateWastageRequest{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    dec(3),
		Reason:      "producto vencido",
	})
	require.NoError(t, err)
	assert.Equal(t, "producto vencido", resp.Reason)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(5)))

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeWastage, movs[0].Type)
	assert.True(t, movs[0].QuantityDelta.Equal(dec(-3)))
	assert.Equal(t, "producto vencido", movs[0].Reason)
}

func TestCreate_MotivoObligatorio(t *testing.T) {
	uc, store := newWastageUC(t)

	_, err := uc.Create(context.Background(), userID, dto.CreateWastageRequest{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrReasonRequired)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(8)))
}

func TestCreate_SinStockSuficiente(t *testing.T) {
	uc, store := newWastageUC(t)

	_, err := uc.Create(context.Background(), userID, dto.CreateWastageRequest{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    dec(9),
		Reason:      "daño en bodega",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.Quantity(productID, warehouseID).Equal(dec(8)))
	assert.Empty(t, store.Movements())
}
