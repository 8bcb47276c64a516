package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

var _ repository.WastageRepository = (*WastageRepo)(nil)

// WastageRepo implementación del puerto WastageRepository sobre PostgreSQL.
type WastageRepo struct {
	q Querier
}

// NewWastageRepository construye el adaptador de persistencia para mermas.
func NewWastageRepository(q Querier) *WastageRepo {
	return &WastageRepo{q: q}
}

// Create persiste un registro de merma.
func (r *WastageRepo) Create(ctx context.Context, record *entity.WastageRecord) error {
	query := `
		INSERT INTO wastage_records (id, product_id, warehouse_id, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.ProductID, record.WarehouseID, record.Quantity, record.Reason, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert wastage record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de merma.
func (r *WastageRepo) GetByID(ctx context.Context, id string) (*entity.WastageRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, reason, created_by, created_at
		FROM wastage_records WHERE id = $1`
	var rec entity.WastageRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.Reason, &rec.CreatedBy, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wastage record: %w", err)
	}
	return &rec, nil
}

// List devuelve registros de merma paginados, más reciente primero.
func (r *WastageRepo) List(ctx context.Context, limit, offset int) ([]*entity.WastageRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, reason, created_by, created_at
		FROM wastage_records ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wastage records: %w", err)
	}
	defer rows.Close()

	var records []*entity.WastageRecord
	for rows.Next() {
		var rec entity.WastageRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.Reason, &rec.CreatedBy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wastage record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
