package stock

import (
	"context"

	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// RepoSet repositorios atados a una misma transacción de BD. Los productores
// de eventos de negocio y el motor de stock comparten esta unidad de trabajo:
// el documento (compra, venta, devolución...) y sus movimientos de stock se
// confirman o revierten juntos.
type RepoSet struct {
	Levels    repository.StockLevelRepository
	Movements repository.StockMovementRepository
	Products  repository.ProductRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	POS       repository.POSTransactionRepository
	Returns   repository.ReturnRepository
	Wastage   repository.WastageRepository
}

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Commit si fn retorna nil; Rollback en cualquier otro caso. Los errores de
// contención de bloqueos se traducen a domain.ErrBusy (reintentables).
type TxRunner interface {
	Run(ctx context.Context, fn func(tx RepoSet) error) error
}
