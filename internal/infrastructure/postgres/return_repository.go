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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación del puerto ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de persistencia para devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste la cabecera de una devolución.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ReturnRecord) error {
	query := `
		INSERT INTO returns (id, sale_id, warehouse_id, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`
	_, err := r.q.Exec(ctx, query, ret.ID, ret.SaleID, ret.WarehouseID, ret.Reason, ret.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// CreateItem persiste una línea devuelta.
func (r *ReturnRepo) CreateItem(ctx context.Context, item *entity.ReturnItem) error {
	query := `
		INSERT INTO return_items (id, return_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, item.ID, item.ReturnID, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("insert return item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una devolución.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ReturnRecord, error) {
	query := `SELECT id, sale_id, warehouse_id, reason, created_by, created_at FROM returns WHERE id = $1`
	var ret entity.ReturnRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ret.ID, &ret.SaleID, &ret.WarehouseID, &ret.Reason, &ret.CreatedBy, &ret.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return &ret, nil
}

// GetItems devuelve las líneas de una devolución.
func (r *ReturnRepo) GetItems(ctx context.Context, returnID string) ([]*entity.ReturnItem, error) {
	query := `SELECT id, return_id, product_id, quantity FROM return_items WHERE return_id = $1`
	rows, err := r.q.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()

	var items []*entity.ReturnItem
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListBySale devuelve las devoluciones registradas contra una venta.
func (r *ReturnRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.ReturnRecord, error) {
	query := `
		SELECT id, sale_id, warehouse_id, reason, created_by, created_at
		FROM returns WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list returns by sale: %w", err)
	}
	defer rows.Close()

	var returns []*entity.ReturnRecord
	for rows.Next() {
		var ret entity.ReturnRecord
		if err := rows.Scan(&ret.ID, &ret.SaleID, &ret.WarehouseID, &ret.Reason, &ret.CreatedBy, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		returns = append(returns, &ret)
	}
	return returns, rows.Err()
}
