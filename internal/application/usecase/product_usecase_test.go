package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/application/usecase"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *stocktest.Store) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedWarehouse(entity.Warehouse{ID: "bodega-1", Name: "Principal"})
	store.SeedWarehouse(entity.Warehouse{ID: "bodega-2", Name: "Norte"})
	repos := store.Repos()
	return usecase.NewProductUseCase(repos.Products, repos.Levels, store.Warehouses()), store
}

func TestCreate_ProductoConNivelesEnCero(t *testing.T) {
	uc, store := newProductUC(t)

	resp, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:     "CAF-500",
		Name:    "Café 500g",
		Price:   decimal.NewFromInt(15000),
		TaxRate: decimal.NewFromFloat(0.19),
	})
	require.NoError(t, err)
	assert.True(t, resp.Cost.IsZero(), "el costo inicia en 0 y solo lo mueven las compras")
	assert.Equal(t, "unidad", resp.UnitMeasure)

	assert.True(t, store.Quantity(resp.ID, "bodega-1").IsZero())
	assert.True(t, store.Quantity(resp.ID, "bodega-2").IsZero())
}

func TestCreate_SKURepetido(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "Uno"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{
		SKU: "N-1", Name: "Precio negativo", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_NoTocaCosto(t *testing.T) {
	uc, store := newProductUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "U-1", Name: "Original"})
	require.NoError(t, err)

	// Simular un costo fijado por compras.
	repos := store.Repos()
	require.NoError(t, repos.Products.UpdateCost(ctx, created.ID, decimal.NewFromInt(80)))

	newName := "Renombrado"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", updated.Name)
	assert.True(t, updated.Cost.Equal(decimal.NewFromInt(80)), "Update no debe tocar el costo")
}
