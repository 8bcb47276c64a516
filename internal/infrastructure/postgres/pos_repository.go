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

var _ repository.POSTransactionRepository = (*POSRepo)(nil)

// POSRepo implementación del puerto POSTransactionRepository sobre PostgreSQL.
type POSRepo struct {
	q Querier
}

// NewPOSTransactionRepository construye el adaptador de persistencia para
// tickets POS.
func NewPOSTransactionRepository(q Querier) *POSRepo {
	return &POSRepo{q: q}
}

const posColumns = `id, warehouse_id, customer_id, receipt_number, status, net_total, tax_total, grand_total, payment_method, created_by, created_at, closed_at`

func scanPOS(row pgx.Row) (*entity.POSTransaction, error) {
	var t entity.POSTransaction
	err := row.Scan(
		&t.ID, &t.WarehouseID, &t.CustomerID, &t.ReceiptNumber, &t.Status,
		&t.NetTotal, &t.TaxTotal, &t.GrandTotal, &t.PaymentMethod,
		&t.CreatedBy, &t.CreatedAt, &t.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un ticket recién abierto.
func (r *POSRepo) Create(ctx context.Context, tx *entity.POSTransaction) error {
	query := `
		INSERT INTO pos_transactions (id, warehouse_id, customer_id, receipt_number, status, net_total, tax_total, grand_total, payment_method, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.WarehouseID, tx.CustomerID, tx.ReceiptNumber, tx.Status,
		tx.NetTotal, tx.TaxTotal, tx.GrandTotal, tx.PaymentMethod, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert pos transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID.
func (r *POSRepo) GetByID(ctx context.Context, id string) (*entity.POSTransaction, error) {
	query := `SELECT ` + posColumns + ` FROM pos_transactions WHERE id = $1`
	t, err := scanPOS(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get pos transaction: %w", err)
	}
	return t, nil
}

// GetByIDForUpdate bloquea la cabecera del ticket dentro de la transacción.
func (r *POSRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.POSTransaction, error) {
	query := `SELECT ` + posColumns + ` FROM pos_transactions WHERE id = $1 FOR UPDATE`
	t, err := scanPOS(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock pos transaction: %w", err)
	}
	return t, nil
}

// Update actualiza totales y estado del ticket (agregar ítem, cerrar, anular).
func (r *POSRepo) Update(ctx context.Context, tx *entity.POSTransaction) error {
	query := `
		UPDATE pos_transactions
		SET receipt_number = $2, status = $3, net_total = $4, tax_total = $5,
		    grand_total = $6, payment_method = $7, closed_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		tx.ID, tx.ReceiptNumber, tx.Status, tx.NetTotal, tx.TaxTotal,
		tx.GrandTotal, tx.PaymentMethod, tx.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update pos transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem persiste un ítem del ticket.
func (r *POSRepo) CreateItem(ctx context.Context, item *entity.POSItem) error {
	query := `
		INSERT INTO pos_items (id, transaction_id, product_id, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TransactionID, item.ProductID, item.Quantity,
		item.UnitPrice, item.TaxRate, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert pos item: %w", err)
	}
	return nil
}

// GetItems devuelve los ítems de un ticket.
func (r *POSRepo) GetItems(ctx context.Context, transactionID string) ([]*entity.POSItem, error) {
	query := `
		SELECT id, transaction_id, product_id, quantity, unit_price, tax_rate, subtotal
		FROM pos_items WHERE transaction_id = $1`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list pos items: %w", err)
	}
	defer rows.Close()

	var items []*entity.POSItem
	for rows.Next() {
		var it entity.POSItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan pos item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
