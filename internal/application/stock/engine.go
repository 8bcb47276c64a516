package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// Engine es el único punto por el que se muta la cantidad en stock.
// Cada operación ejecuta: bloquear fila (SELECT FOR UPDATE) → leer cantidad →
// validar resultado (>= 0) → escribir cantidad → registrar movimiento, todo
// dentro de una transacción. Si la validación falla no se escribe nada y la
// transacción completa se revierte.
type Engine struct {
	tx TxRunner
}

// NewEngine construye el motor de stock.
func NewEngine(tx TxRunner) *Engine {
	return &Engine{tx: tx}
}

// ReceiveInput entrada de mercancía (compra o devolución).
type ReceiveInput struct {
	ProductID     string
	WarehouseID   string
	Quantity      decimal.Decimal // > 0
	ReferenceType entity.ReferenceType
	ReferenceID   string
	ActorID       string
}

// IssueInput salida de mercancía (venta, POS o merma).
type IssueInput struct {
	ProductID     string
	WarehouseID   string
	Quantity      decimal.Decimal // > 0
	ReferenceType entity.ReferenceType
	ReferenceID   string
	Reason        string // obligatorio para merma
	ActorID       string
}

// AdjustInput ajuste manual con delta firmado y motivo obligatorio.
type AdjustInput struct {
	ProductID   string
	WarehouseID string
	Delta       decimal.Decimal // != 0
	Reason      string
	ReferenceID string // opcional: documento de ajuste
	ActorID     string
}

// ReverseInput devolución contra una venta original. La cantidad acumulada
// devuelta por (referencia, producto) nunca puede superar lo vendido.
type ReverseInput struct {
	ReferenceID   string               // ID de la venta o ticket POS original
	ReferenceType entity.ReferenceType // documento original; vacío equivale a venta
	ProductID     string
	WarehouseID   string
	Quantity      decimal.Decimal // >= 0; 0 es un no-op válido
	Reason        string
	ActorID       string
}

// Receive aplica una entrada en su propia transacción.
func (e *Engine) Receive(ctx context.Context, in ReceiveInput) (*entity.StockLevel, error) {
	var level *entity.StockLevel
	err := e.tx.Run(ctx, func(tx RepoSet) error {
		var err error
		level, err = e.ReceiveTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// ReceiveTx aplica una entrada usando la transacción abierta del caller.
func (e *Engine) ReceiveTx(ctx context.Context, tx RepoSet, in ReceiveInput) (*entity.StockLevel, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	level, err := e.lockLevel(ctx, tx, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	level.Quantity = level.Quantity.Add(in.Quantity)
	level.UpdatedAt = time.Now()
	if err := tx.Levels.Upsert(ctx, level); err != nil {
		return nil, err
	}
	movType := entity.MovementTypePurchase
	if in.ReferenceType == entity.ReferenceTypeReturn {
		movType = entity.MovementTypeReturn
	}
	mov := &entity.StockMovement{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		Type:          movType,
		QuantityDelta: in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		CreatedBy:     in.ActorID,
		CreatedAt:     level.UpdatedAt,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return level, nil
}

// Issue aplica una salida en su propia transacción.
func (e *Engine) Issue(ctx context.Context, in IssueInput) (*entity.StockLevel, error) {
	var level *entity.StockLevel
	err := e.tx.Run(ctx, func(tx RepoSet) error {
		var err error
		level, err = e.IssueTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// IssueTx aplica una salida usando la transacción abierta del caller.
// La verificación de disponibilidad y el descuento ocurren bajo el mismo
// bloqueo de fila: dos salidas concurrentes del mismo producto no pueden
// pasar ambas la validación contra una cantidad desactualizada.
func (e *Engine) IssueTx(ctx context.Context, tx RepoSet, in IssueInput) (*entity.StockLevel, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	movType := entity.MovementTypeSale
	if in.ReferenceType == entity.ReferenceTypeWastage {
		movType = entity.MovementTypeWastage
		if in.Reason == "" {
			return nil, domain.ErrReasonRequired
		}
	}
	level, err := e.lockLevel(ctx, tx, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if level.Quantity.LessThan(in.Quantity) {
		return nil, &domain.InsufficientStockError{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Current:     level.Quantity,
			Requested:   in.Quantity,
		}
	}
	level.Quantity = level.Quantity.Sub(in.Quantity)
	level.UpdatedAt = time.Now()
	if err := tx.Levels.Upsert(ctx, level); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		Type:          movType,
		QuantityDelta: in.Quantity.Neg(),
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Reason:        in.Reason,
		CreatedBy:     in.ActorID,
		CreatedAt:     level.UpdatedAt,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return level, nil
}

// Adjust aplica un ajuste manual en su propia transacción.
func (e *Engine) Adjust(ctx context.Context, in AdjustInput) (*entity.StockLevel, error) {
	var level *entity.StockLevel
	err := e.tx.Run(ctx, func(tx RepoSet) error {
		var err error
		level, err = e.AdjustTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// AdjustTx aplica un delta firmado usando la transacción abierta del caller.
func (e *Engine) AdjustTx(ctx context.Context, tx RepoSet, in AdjustInput) (*entity.StockLevel, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Reason == "" {
		return nil, domain.ErrReasonRequired
	}
	level, err := e.lockLevel(ctx, tx, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	newQty := level.Quantity.Add(in.Delta)
	if newQty.IsNegative() {
		return nil, &domain.InsufficientStockError{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Current:     level.Quantity,
			Requested:   in.Delta.Neg(),
		}
	}
	level.Quantity = newQty
	level.UpdatedAt = time.Now()
	if err := tx.Levels.Upsert(ctx, level); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		Type:          entity.MovementTypeAdjustment,
		QuantityDelta: in.Delta,
		ReferenceType: entity.ReferenceTypeAdjustment,
		ReferenceID:   in.ReferenceID,
		Reason:        in.Reason,
		CreatedBy:     in.ActorID,
		CreatedAt:     level.UpdatedAt,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return level, nil
}

// Reverse aplica una devolución en su propia transacción.
func (e *Engine) Reverse(ctx context.Context, in ReverseInput) (*entity.StockLevel, error) {
	var level *entity.StockLevel
	err := e.tx.Run(ctx, func(tx RepoSet) error {
		var err error
		level, err = e.ReverseTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// ReverseTx re-aplica el inverso de una salida previa contra la referencia
// original. Suma los deltas previos de (referencia, producto) bajo el bloqueo
// de la fila de stock, de modo que el límite vendido − ya devuelto es estable
// frente a devoluciones concurrentes.
func (e *Engine) ReverseTx(ctx context.Context, tx RepoSet, in ReverseInput) (*entity.StockLevel, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.ReferenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	level, err := e.lockLevel(ctx, tx, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if in.Quantity.IsZero() {
		// Devolver 0 unidades es un no-op válido
		return level, nil
	}
	tally, err := tx.Movements.TallyByReference(ctx, in.ReferenceID, in.ProductID)
	if err != nil {
		return nil, err
	}
	available := tally.Issued.Sub(tally.Returned)
	if in.Quantity.GreaterThan(available) {
		return nil, &domain.OverReturnError{
			ReferenceID: in.ReferenceID,
			ProductID:   in.ProductID,
			Issued:      tally.Issued,
			Returned:    tally.Returned,
			Requested:   in.Quantity,
		}
	}
	level.Quantity = level.Quantity.Add(in.Quantity)
	level.UpdatedAt = time.Now()
	if err := tx.Levels.Upsert(ctx, level); err != nil {
		return nil, err
	}
	refType := in.ReferenceType
	if refType == "" {
		refType = entity.ReferenceTypeSale
	}
	mov := &entity.StockMovement{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		Type:          entity.MovementTypeReturn,
		QuantityDelta: in.Quantity,
		ReferenceType: refType,
		ReferenceID:   in.ReferenceID, // referencia al documento original
		Reason:        in.Reason,
		CreatedBy:     in.ActorID,
		CreatedAt:     level.UpdatedAt,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return level, nil
}

// lockLevel bloquea la fila de stock del producto en la bodega. Si la fila no
// existe pero el producto sí (bodega nueva), la materializa en 0 y la bloquea;
// sin fila bloqueada dos entradas concurrentes podrían pisarse el upsert.
// Si el producto tampoco existe es un error de datos.
func (e *Engine) lockLevel(ctx context.Context, tx RepoSet, productID, warehouseID string) (*entity.StockLevel, error) {
	level, err := tx.Levels.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level != nil {
		return level, nil
	}
	product, err := tx.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := tx.Levels.CreateIfMissing(ctx, productID, warehouseID); err != nil {
		return nil, err
	}
	level, err = tx.Levels.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrProductNotFound
	}
	return level, nil
}
