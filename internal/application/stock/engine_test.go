package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock/stocktest"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "00000000-0000-0000-0000-0000000000aa"
	testWarehouseID = "00000000-0000-0000-0000-0000000000bb"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// newEngine construye un motor sobre un almacén en memoria con un producto
// sembrado y sin stock.
func newEngine(t *testing.T) (*stock.Engine, *stocktest.Store) {
	t.Helper()
	store := stocktest.NewStore()
	store.SeedProduct(entity.Product{ID: testProductID, SKU: "SKU-1", Name: "Café 500g"})
	return stock.NewEngine(stocktest.NewRunner(store)), store
}

func receive(t *testing.T, e *stock.Engine, qty int64) *entity.StockLevel {
	t.Helper()
	level, err := e.Receive(context.Background(), stock.ReceiveInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(qty),
		ReferenceType: entity.ReferenceTypePurchase,
		ReferenceID:   "compra-1",
	})
	require.NoError(t, err)
	return level
}

// ──────────────────────────────────────────────────────────────────────────────
// Secuencia básica: entrada, salida, ajuste y rechazo por stock insuficiente
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_SecuenciaEntradaSalidaAjuste(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()

	// 0 → +100 → −30 → −5 = 65
	receive(t, engine, 100)

	level, err := engine.Issue(ctx, stock.IssueInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(30),
		ReferenceType: entity.ReferenceTypeSale,
		ReferenceID:   "venta-1",
	})
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(dec(70)))

	level, err = engine.Adjust(ctx, stock.AdjustInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       dec(-5),
		Reason:      "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(dec(65)))

	// Pedir 100 con 65 disponibles debe fallar sin tocar la cantidad.
	_, err = engine.Issue(ctx, stock.IssueInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(100),
		ReferenceType: entity.ReferenceTypeSale,
		ReferenceID:   "venta-2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Current.Equal(dec(65)), "Current debe ser la cantidad disponible")
	assert.True(t, insufficient.Requested.Equal(dec(100)), "Requested debe ser lo pedido")

	assert.True(t, store.Quantity(testProductID, testWarehouseID).Equal(dec(65)),
		"un rechazo no debe modificar el stock")
}

// El libro de movimientos debe reconstruir la cantidad absoluta: la suma de
// deltas por producto y bodega es siempre igual al StockLevel.
func TestEngine_LibroReconstruyeCantidad(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()

	receive(t, engine, 100)
	_, err := engine.Issue(ctx, stock.IssueInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(30),
		ReferenceType: entity.ReferenceTypeSale,
		ReferenceID:   "venta-1",
	})
	require.NoError(t, err)
	_, err = engine.Adjust(ctx, stock.AdjustInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       dec(-5),
		Reason:      "merma de conteo",
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, m := range store.Movements() {
		sum = sum.Add(m.QuantityDelta)
	}
	assert.True(t, sum.Equal(store.Quantity(testProductID, testWarehouseID)),
		"la suma de deltas debe coincidir con la cantidad absoluta")
	assert.Len(t, store.Movements(), 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_CantidadInvalida(t *testing.T) {
	engine, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, stock.ReceiveInput{
		ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: dec(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "recibir 0 no es válido")

	_, err = engine.Issue(ctx, stock.IssueInput{
		ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: dec(-3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "sacar una cantidad negativa no es válido")

	_, err = engine.Adjust(ctx, stock.AdjustInput{
		ProductID: testProductID, WarehouseID: testWarehouseID, Delta: dec(0), Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "ajustar con delta 0 no es válido")
}

func TestEngine_MotivoObligatorio(t *testing.T) {
	engine, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.Adjust(ctx, stock.AdjustInput{
		ProductID: testProductID, WarehouseID: testWarehouseID, Delta: dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrReasonRequired, "ajuste sin motivo debe rechazarse")

	_, err = engine.Issue(ctx, stock.IssueInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(1),
		ReferenceType: entity.ReferenceTypeWastage,
	})
	assert.ErrorIs(t, err, domain.ErrReasonRequired, "merma sin motivo debe rechazarse")
}

func TestEngine_ProductoInexistente(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.Receive(context.Background(), stock.ReceiveInput{
		ProductID:   "no-existe",
		WarehouseID: testWarehouseID,
		Quantity:    dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Un producto sin fila de stock en una bodega nueva se materializa en 0 al
// primer movimiento; recibir sobre esa bodega no requiere preparación previa.
func TestEngine_BodegaNuevaMaterializaEnCero(t *testing.T) {
	engine, store := newEngine(t)

	level := receive(t, engine, 10)
	assert.True(t, level.Quantity.Equal(dec(10)))
	assert.True(t, store.Quantity(testProductID, testWarehouseID).Equal(dec(10)))
}

func TestEngine_AjusteNegativoBajoCero(t *testing.T) {
	engine, store := newEngine(t)
	receive(t, engine, 10)

	_, err := engine.Adjust(context.Background(), stock.AdjustInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       dec(-11),
		Reason:      "conteo físico",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.Quantity(testProductID, testWarehouseID).Equal(dec(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: sin actualizaciones perdidas
// ──────────────────────────────────────────────────────────────────────────────

// Diez salidas concurrentes de 10 unidades sobre 100 disponibles deben dejar
// el stock exactamente en 0; con lecturas desactualizadas el total descontado
// sería menor (lost update) o el stock quedaría negativo.
func TestEngine_SalidasConcurrentesSinPerderActualizaciones(t *testing.T) {
	engine, store := newEngine(t)
	receive(t, engine, 100)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Issue(context.Background(), stock.IssueInput{
				ProductID:     testProductID,
				WarehouseID:   testWarehouseID,
				Quantity:      dec(10),
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   "venta-concurrente",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "salida concurrente %d", i)
	}
	assert.True(t, store.Quantity(testProductID, testWarehouseID).IsZero(),
		"100 − 10×10 debe dejar el stock en 0 exacto")

	// La siguiente unidad ya no existe.
	_, err := engine.Issue(context.Background(), stock.IssueInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(1),
		ReferenceType: entity.ReferenceTypeSale,
		ReferenceID:   "venta-extra",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones: el acumulado nunca supera lo vendido
// ──────────────────────────────────────────────────────────────────────────────

func issueForSale(t *testing.T, e *stock.Engine, saleID string, qty int64) {
	t.Helper()
	_, err := e.Issue(context.Background(), stock.IssueInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(qty),
		ReferenceType: entity.ReferenceTypeSale,
		ReferenceID:   saleID,
	})
	require.NoError(t, err)
}

func reverse(e *stock.Engine, saleID string, qty int64) (*entity.StockLevel, error) {
	return e.Reverse(context.Background(), stock.ReverseInput{
		ReferenceID: saleID,
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    dec(qty),
	})
}

func TestEngine_DevolucionNoSuperaLoVendido(t *testing.T) {
	engine, store := newEngine(t)
	receive(t, engine, 50)
	issueForSale(t, engine, "venta-1", 10)

	// Devolver 11 de una venta de 10 → rechazo con el detalle completo.
	_, err := reverse(engine, "venta-1", 11)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverReturn)

	var over *domain.OverReturnError
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Issued.Equal(dec(10)))
	assert.True(t, over.Returned.IsZero())
	assert.True(t, over.Requested.Equal(dec(11)))

	// Devolver 6 y luego 5 → la segunda excede el saldo (10 − 6 = 4).
	_, err = reverse(engine, "venta-1", 6)
	require.NoError(t, err)

	_, err = reverse(engine, "venta-1", 5)
	require.Error(t, err)
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Returned.Equal(dec(6)), "debe acumular lo ya devuelto")

	// Devolver el saldo exacto sí procede.
	level, err := reverse(engine, "venta-1", 4)
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(dec(50)), "todo devuelto: stock de vuelta al inicial")
	assert.True(t, store.Quantity(testProductID, testWarehouseID).Equal(dec(50)))
}

func TestEngine_DevolverCeroEsNoOp(t *testing.T) {
	engine, store := newEngine(t)
	receive(t, engine, 20)
	issueForSale(t, engine, "venta-1", 5)

	movsBefore := len(store.Movements())
	level, err := reverse(engine, "venta-1", 0)
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(dec(15)))
	assert.Len(t, store.Movements(), movsBefore, "devolver 0 no debe registrar movimiento")

	_, err = reverse(engine, "venta-1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// La entrada por devolución usa el tipo de movimiento return aunque pase por
// Receive, para que el tally de sobre-devolución la cuente.
func TestEngine_RecibirDevolucionRegistraTipoReturn(t *testing.T) {
	engine, store := newEngine(t)

	_, err := engine.Receive(context.Background(), stock.ReceiveInput{
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(3),
		ReferenceType: entity.ReferenceTypeReturn,
		ReferenceID:   "dev-1",
	})
	require.NoError(t, err)

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeReturn, movs[0].Type)
}

func TestEngine_ReversaConservaTipoDeReferencia(t *testing.T) {
	engine, store := newEngine(t)
	receive(t, engine, 10)
	issueForSale(t, engine, "ticket-1", 4)

	_, err := engine.Reverse(context.Background(), stock.ReverseInput{
		ReferenceID:   "ticket-1",
		ReferenceType: entity.ReferenceTypePOS,
		ProductID:     testProductID,
		WarehouseID:   testWarehouseID,
		Quantity:      dec(4),
		Reason:        "anulación de ticket",
	})
	require.NoError(t, err)

	movs := store.Movements()
	require.Len(t, movs, 3)
	last := movs[len(movs)-1]
	assert.Equal(t, entity.MovementTypeReturn, last.Type)
	assert.Equal(t, entity.ReferenceTypePOS, last.ReferenceType,
		"la reversa nombra el documento original, no una venta")
	assert.Equal(t, "ticket-1", last.ReferenceID)
}
