package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de solo lectura sobre stock. Corre sobre el pool,
// fuera de transacciones; las lecturas pueden ir levemente detrás de los
// escritores en vuelo.
type ReportingRepo struct {
	q Querier
}

// NewReportingRepository construye el adaptador de reportes de inventario.
func NewReportingRepository(q Querier) *ReportingRepo {
	return &ReportingRepo{q: q}
}

// LevelsByProduct niveles de un producto en todas las bodegas.
func (r *ReportingRepo) LevelsByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 ORDER BY warehouse_id`
	return r.queryLevels(ctx, query, productID)
}

// LevelsByWarehouse niveles paginados de una bodega.
func (r *ReportingRepo) LevelsByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_levels WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	return r.queryLevels(ctx, query, warehouseID, limit, offset)
}

func (r *ReportingRepo) queryLevels(ctx context.Context, query string, args ...any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var levels []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.WarehouseID, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		levels = append(levels, &l)
	}
	return levels, rows.Err()
}

// LowStock productos cuyo stock agregado está en o por debajo del punto de
// reorden. warehouseID vacío agrega todas las bodegas.
func (r *ReportingRepo) LowStock(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(SUM(sl.quantity), 0) AS current, p.reorder_point
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
			AND ($1 = '' OR sl.warehouse_id = $1)
		GROUP BY p.id, p.sku, p.name, p.reorder_point
		HAVING COALESCE(SUM(sl.quantity), 0) <= p.reorder_point
		ORDER BY current ASC, p.name`
	return r.queryLowStock(ctx, query, warehouseID)
}

// OutOfStock productos con stock agregado en cero.
func (r *ReportingRepo) OutOfStock(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(SUM(sl.quantity), 0) AS current, p.reorder_point
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
			AND ($1 = '' OR sl.warehouse_id = $1)
		GROUP BY p.id, p.sku, p.name, p.reorder_point
		HAVING COALESCE(SUM(sl.quantity), 0) = 0
		ORDER BY p.name`
	return r.queryLowStock(ctx, query, warehouseID)
}

func (r *ReportingRepo) queryLowStock(ctx context.Context, query, warehouseID string) ([]repository.LowStockItem, error) {
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.CurrentStock, &it.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Valuation valorización del inventario: cantidad por costo promedio.
func (r *ReportingRepo) Valuation(ctx context.Context, warehouseID string) ([]repository.ValuationItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(SUM(sl.quantity), 0) AS qty, p.cost,
		       COALESCE(SUM(sl.quantity), 0) * p.cost AS total
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
			AND ($1 = '' OR sl.warehouse_id = $1)
		GROUP BY p.id, p.sku, p.name, p.cost
		ORDER BY total DESC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("valuation report: %w", err)
	}
	defer rows.Close()

	var items []repository.ValuationItem
	for rows.Next() {
		var it repository.ValuationItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.Name, &it.Quantity, &it.UnitCost, &it.TotalValue); err != nil {
			return nil, fmt.Errorf("scan valuation item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
