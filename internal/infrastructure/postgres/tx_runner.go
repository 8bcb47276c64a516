package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con todos
// los repositorios atados a ella (unidad de trabajo compartida entre el motor
// de stock y los productores de eventos de negocio).
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner. lockTimeout limita la espera por bloqueos
// de fila para que una transacción atascada no frene indefinidamente a las
// demás sobre el mismo producto; 0 desactiva el límite.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a ella y hace
// Commit o Rollback. Contención de bloqueos (lock_timeout, serialización,
// deadlock) se traduce a domain.ErrBusy, reintentable por el caller.
func (r *TxRunner) Run(ctx context.Context, fn func(tx stock.RepoSet) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros bind; el valor viene de configuración
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	repos := stock.RepoSet{
		Levels:    NewStockLevelRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Products:  NewProductRepository(tx),
		Purchases: NewPurchaseRepository(tx),
		Sales:     NewSaleRepository(tx),
		POS:       NewPOSTransactionRepository(tx),
		Returns:   NewReturnRepository(tx),
		Wastage:   NewWastageRepository(tx),
	}

	if err := fn(repos); err != nil {
		if isLockContention(err) {
			return fmt.Errorf("%w: %v", domain.ErrBusy, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isLockContention(err) {
			return fmt.Errorf("%w: %v", domain.ErrBusy, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
