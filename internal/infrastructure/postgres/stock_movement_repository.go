package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El libro es append-only: no expone Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para el
// libro de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento. Asigna ID si viene vacío.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.NewString()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, type, quantity_delta, reference_type, reference_id, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.WarehouseID, string(movement.Type),
		movement.QuantityDelta, string(movement.ReferenceType), movement.ReferenceID,
		movement.Reason, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// TallyByReference acumula lo salido y lo devuelto contra (referencia,
// producto). Los deltas de salida se almacenan negativos; aquí se devuelven
// en valor absoluto.
func (r *StockMovementRepo) TallyByReference(ctx context.Context, referenceID, productID string) (repository.ReferenceTally, error) {
	query := `
		SELECT
			COALESCE(-SUM(quantity_delta) FILTER (WHERE quantity_delta < 0), 0),
			COALESCE(SUM(quantity_delta) FILTER (WHERE type = 'return'), 0)
		FROM stock_movements
		WHERE reference_id = $1 AND product_id = $2`
	var tally repository.ReferenceTally
	err := r.q.QueryRow(ctx, query, referenceID, productID).Scan(&tally.Issued, &tally.Returned)
	if err != nil {
		return repository.ReferenceTally{}, fmt.Errorf("tally movements by reference: %w", err)
	}
	return tally, nil
}

// SumDeltaByProduct reconstruye la cantidad desde el libro. Debe coincidir
// con stock_levels.quantity para el mismo par (producto, bodega).
func (r *StockMovementRepo) SumDeltaByProduct(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity_delta), 0)
		FROM stock_movements
		WHERE product_id = $1 AND warehouse_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movement deltas: %w", err)
	}
	return sum, nil
}

// ListByProduct historial paginado de movimientos, más reciente primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, type, quantity_delta, reference_type, reference_id, reason, created_by, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var mtype, reftype string
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.WarehouseID, &mtype, &m.QuantityDelta,
			&reftype, &m.ReferenceID, &m.Reason, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(mtype)
		m.ReferenceType = entity.ReferenceType(reftype)
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
