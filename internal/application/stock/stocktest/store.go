// Package stocktest provee un almacén en memoria con semántica transaccional
// para probar el motor de stock y sus productores sin una base de datos real.
// El Runner serializa las transacciones con un mutex y revierte el estado
// completo cuando fn retorna error, igual que un Rollback.
package stocktest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	"github.com/tu-usuario/stockpos-backend/internal/domain/repository"
)

// Store estado compartido entre los fakes de repositorio.
type Store struct {
	mu   sync.Mutex
	data data
}

type data struct {
	levels        map[string]entity.StockLevel // productID|warehouseID
	movements     []entity.StockMovement
	products      map[string]entity.Product
	purchases     map[string]entity.Purchase
	purchaseItems []entity.PurchaseItem
	sales         map[string]entity.Sale
	saleItems     []entity.SaleItem
	pos           map[string]entity.POSTransaction
	posItems      []entity.POSItem
	returns       map[string]entity.ReturnRecord
	returnItems   []entity.ReturnItem
	wastage       map[string]entity.WastageRecord
	customers     map[string]entity.Customer
	vendors       map[string]entity.Vendor
	warehouses    map[string]entity.Warehouse
}

func newData() data {
	return data{
		levels:     make(map[string]entity.StockLevel),
		products:   make(map[string]entity.Product),
		purchases:  make(map[string]entity.Purchase),
		sales:      make(map[string]entity.Sale),
		pos:        make(map[string]entity.POSTransaction),
		returns:    make(map[string]entity.ReturnRecord),
		wastage:    make(map[string]entity.WastageRecord),
		customers:  make(map[string]entity.Customer),
		vendors:    make(map[string]entity.Vendor),
		warehouses: make(map[string]entity.Warehouse),
	}
}

func (d *data) clone() data {
	cp := data{
		levels:        make(map[string]entity.StockLevel, len(d.levels)),
		movements:     append([]entity.StockMovement(nil), d.movements...),
		products:      make(map[string]entity.Product, len(d.products)),
		purchases:     make(map[string]entity.Purchase, len(d.purchases)),
		purchaseItems: append([]entity.PurchaseItem(nil), d.purchaseItems...),
		sales:         make(map[string]entity.Sale, len(d.sales)),
		saleItems:     append([]entity.SaleItem(nil), d.saleItems...),
		pos:           make(map[string]entity.POSTransaction, len(d.pos)),
		posItems:      append([]entity.POSItem(nil), d.posItems...),
		returns:       make(map[string]entity.ReturnRecord, len(d.returns)),
		returnItems:   append([]entity.ReturnItem(nil), d.returnItems...),
		wastage:       make(map[string]entity.WastageRecord, len(d.wastage)),
		customers:     make(map[string]entity.Customer, len(d.customers)),
		vendors:       make(map[string]entity.Vendor, len(d.vendors)),
		warehouses:    make(map[string]entity.Warehouse, len(d.warehouses)),
	}
	for k, v := range d.levels {
		cp.levels[k] = v
	}
	for k, v := range d.products {
		cp.products[k] = v
	}
	for k, v := range d.purchases {
		cp.purchases[k] = v
	}
	for k, v := range d.sales {
		cp.sales[k] = v
	}
	for k, v := range d.pos {
		if v.ClosedAt != nil {
			t := *v.ClosedAt
			v.ClosedAt = &t
		}
		cp.pos[k] = v
	}
	for k, v := range d.returns {
		cp.returns[k] = v
	}
	for k, v := range d.wastage {
		cp.wastage[k] = v
	}
	for k, v := range d.customers {
		cp.customers[k] = v
	}
	for k, v := range d.vendors {
		cp.vendors[k] = v
	}
	for k, v := range d.warehouses {
		cp.warehouses[k] = v
	}
	return cp
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newData()}
}

func levelKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// ─── Siembra y lectura directa para los tests ────────────────────────────────

// SeedProduct registra un producto.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[p.ID] = p
}

// SeedWarehouse registra una bodega.
func (s *Store) SeedWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.warehouses[w.ID] = w
}

// SeedCustomer registra un cliente.
func (s *Store) SeedCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.customers[c.ID] = c
}

// SeedVendor registra un proveedor.
func (s *Store) SeedVendor(v entity.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.vendors[v.ID] = v
}

// SeedLevel fija la cantidad en stock de un producto en una bodega.
func (s *Store) SeedLevel(productID, warehouseID string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.levels[levelKey(productID, warehouseID)] = entity.StockLevel{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
	}
}

// Quantity devuelve la cantidad actual; cero si la fila no existe.
func (s *Store) Quantity(productID, warehouseID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.levels[levelKey(productID, warehouseID)].Quantity
}

// Movements devuelve una copia del libro de movimientos.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.data.movements...)
}

// SaleCount cantidad de ventas persistidas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.sales)
}

// Product devuelve la copia persistida de un producto.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.products[id]
	return p, ok
}

// Repos devuelve repositorios atados directamente al almacén (sin transacción),
// para los casos de uso que leen catálogos fuera de la unidad de trabajo.
func (s *Store) Repos() stock.RepoSet {
	return repoSet(&s.data)
}

// Customers repositorio de clientes atado al almacén.
func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepo{d: &s.data}
}

// Vendors repositorio de proveedores atado al almacén.
func (s *Store) Vendors() repository.VendorRepository {
	return &vendorRepo{d: &s.data}
}

// Warehouses repositorio de bodegas atado al almacén.
func (s *Store) Warehouses() repository.WarehouseRepository {
	return &warehouseRepo{d: &s.data}
}

func repoSet(d *data) stock.RepoSet {
	return stock.RepoSet{
		Levels:    &levelRepo{d: d},
		Movements: &movementRepo{d: d},
		Products:  &productRepo{d: d},
		Purchases: &purchaseRepo{d: d},
		Sales:     &saleRepo{d: d},
		POS:       &posRepo{d: d},
		Returns:   &returnRepo{d: d},
		Wastage:   &wastageRepo{d: d},
	}
}

// ─── Runner transaccional ────────────────────────────────────────────────────

// Runner implementa stock.TxRunner sobre el almacén. Las transacciones se
// serializan (equivalente grueso del bloqueo de fila) y el estado se revierte
// si fn retorna error. BusyFailures > 0 hace fallar las primeras N llamadas
// con domain.ErrBusy para probar la política de reintentos.
type Runner struct {
	store *Store

	mu           sync.Mutex
	BusyFailures int
	Calls        int
}

var _ stock.TxRunner = (*Runner)(nil)

// NewRunner crea un runner atado al almacén.
func NewRunner(store *Store) *Runner {
	return &Runner{store: store}
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn es nil.
func (r *Runner) Run(ctx context.Context, fn func(tx stock.RepoSet) error) error {
	r.mu.Lock()
	r.Calls++
	if r.BusyFailures > 0 {
		r.BusyFailures--
		r.mu.Unlock()
		return fmt.Errorf("%w: lock timeout simulado", domain.ErrBusy)
	}
	r.mu.Unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.data.clone()
	if err := fn(repoSet(&work)); err != nil {
		return err
	}
	r.store.data = work
	return nil
}

// ─── Fakes de repositorio ────────────────────────────────────────────────────

type levelRepo struct{ d *data }

func (r *levelRepo) Get(_ context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	if lvl, ok := r.d.levels[levelKey(productID, warehouseID)]; ok {
		return &lvl, nil
	}
	return nil, nil
}

func (r *levelRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *levelRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	r.d.levels[levelKey(level.ProductID, level.WarehouseID)] = *level
	return nil
}

func (r *levelRepo) Create(_ context.Context, level *entity.StockLevel) error {
	key := levelKey(level.ProductID, level.WarehouseID)
	if _, ok := r.d.levels[key]; ok {
		return nil
	}
	r.d.levels[key] = *level
	return nil
}

func (r *levelRepo) CreateIfMissing(_ context.Context, productID, warehouseID string) error {
	key := levelKey(productID, warehouseID)
	if _, ok := r.d.levels[key]; !ok {
		r.d.levels[key] = entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}
	}
	return nil
}

type movementRepo struct{ d *data }

func (r *movementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.NewString()
	}
	r.d.movements = append(r.d.movements, *movement)
	return nil
}

func (r *movementRepo) TallyByReference(_ context.Context, referenceID, productID string) (repository.ReferenceTally, error) {
	var tally repository.ReferenceTally
	for _, m := range r.d.movements {
		if m.ReferenceID != referenceID || m.ProductID != productID {
			continue
		}
		if m.QuantityDelta.IsNegative() {
			tally.Issued = tally.Issued.Add(m.QuantityDelta.Neg())
		}
		if m.Type == entity.MovementTypeReturn {
			tally.Returned = tally.Returned.Add(m.QuantityDelta)
		}
	}
	return tally, nil
}

func (r *movementRepo) SumDeltaByProduct(_ context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.d.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.QuantityDelta)
		}
	}
	return sum, nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for i := len(r.d.movements) - 1; i >= 0; i-- {
		if r.d.movements[i].ProductID == productID {
			m := r.d.movements[i]
			all = append(all, &m)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

type productRepo struct{ d *data }

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	for _, p := range r.d.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.d.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.d.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.d.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.d.products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.d.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.d.products[product.ID] = *product
	return nil
}

func (r *productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	p, ok := r.d.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Cost = cost
	r.d.products[id] = p
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	delete(r.d.products, id)
	return nil
}

type purchaseRepo struct{ d *data }

func (r *purchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	r.d.purchases[purchase.ID] = *purchase
	return nil
}

func (r *purchaseRepo) CreateItem(_ context.Context, item *entity.PurchaseItem) error {
	r.d.purchaseItems = append(r.d.purchaseItems, *item)
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	if p, ok := r.d.purchases[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *purchaseRepo) GetItems(_ context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, it := range r.d.purchaseItems {
		if it.PurchaseID == purchaseID {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *purchaseRepo) List(_ context.Context, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.d.purchases {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

type saleRepo struct{ d *data }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.d.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	r.d.saleItems = append(r.d.saleItems, *item)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	if s, ok := r.d.sales[id]; ok {
		return &s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *saleRepo) GetItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.d.saleItems {
		if it.SaleID == saleID {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *saleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.d.sales {
		cp := s
		out = append(out, &cp)
	}
	return out, nil
}

type posRepo struct{ d *data }

func (r *posRepo) Create(_ context.Context, tx *entity.POSTransaction) error {
	r.d.pos[tx.ID] = *tx
	return nil
}

func (r *posRepo) GetByID(_ context.Context, id string) (*entity.POSTransaction, error) {
	if t, ok := r.d.pos[id]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (r *posRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.POSTransaction, error) {
	return r.GetByID(ctx, id)
}

func (r *posRepo) Update(_ context.Context, tx *entity.POSTransaction) error {
	if _, ok := r.d.pos[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	r.d.pos[tx.ID] = *tx
	return nil
}

func (r *posRepo) CreateItem(_ context.Context, item *entity.POSItem) error {
	r.d.posItems = append(r.d.posItems, *item)
	return nil
}

func (r *posRepo) GetItems(_ context.Context, transactionID string) ([]*entity.POSItem, error) {
	var out []*entity.POSItem
	for _, it := range r.d.posItems {
		if it.TransactionID == transactionID {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type returnRepo struct{ d *data }

func (r *returnRepo) Create(_ context.Context, ret *entity.ReturnRecord) error {
	r.d.returns[ret.ID] = *ret
	return nil
}

func (r *returnRepo) CreateItem(_ context.Context, item *entity.ReturnItem) error {
	r.d.returnItems = append(r.d.returnItems, *item)
	return nil
}

func (r *returnRepo) GetByID(_ context.Context, id string) (*entity.ReturnRecord, error) {
	if ret, ok := r.d.returns[id]; ok {
		return &ret, nil
	}
	return nil, domain.ErrNotFound
}

func (r *returnRepo) GetItems(_ context.Context, returnID string) ([]*entity.ReturnItem, error) {
	var out []*entity.ReturnItem
	for _, it := range r.d.returnItems {
		if it.ReturnID == returnID {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *returnRepo) ListBySale(_ context.Context, saleID string) ([]*entity.ReturnRecord, error) {
	var out []*entity.ReturnRecord
	for _, ret := range r.d.returns {
		if ret.SaleID == saleID {
			cp := ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

type wastageRepo struct{ d *data }

func (r *wastageRepo) Create(_ context.Context, record *entity.WastageRecord) error {
	r.d.wastage[record.ID] = *record
	return nil
}

func (r *wastageRepo) GetByID(_ context.Context, id string) (*entity.WastageRecord, error) {
	if w, ok := r.d.wastage[id]; ok {
		return &w, nil
	}
	return nil, domain.ErrNotFound
}

func (r *wastageRepo) List(_ context.Context, limit, offset int) ([]*entity.WastageRecord, error) {
	var out []*entity.WastageRecord
	for _, w := range r.d.wastage {
		cp := w
		out = append(out, &cp)
	}
	return out, nil
}

type customerRepo struct{ d *data }

func (r *customerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.d.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if c, ok := r.d.customers[id]; ok {
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *customerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.d.customers {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *customerRepo) Update(_ context.Context, customer *entity.Customer) error {
	if _, ok := r.d.customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	r.d.customers[customer.ID] = *customer
	return nil
}

type vendorRepo struct{ d *data }

func (r *vendorRepo) Create(_ context.Context, vendor *entity.Vendor) error {
	r.d.vendors[vendor.ID] = *vendor
	return nil
}

func (r *vendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	if v, ok := r.d.vendors[id]; ok {
		return &v, nil
	}
	return nil, domain.ErrNotFound
}

func (r *vendorRepo) List(_ context.Context, limit, offset int) ([]*entity.Vendor, error) {
	var out []*entity.Vendor
	for _, v := range r.d.vendors {
		cp := v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *vendorRepo) Update(_ context.Context, vendor *entity.Vendor) error {
	if _, ok := r.d.vendors[vendor.ID]; !ok {
		return domain.ErrNotFound
	}
	r.d.vendors[vendor.ID] = *vendor
	return nil
}

type warehouseRepo struct{ d *data }

func (r *warehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	r.d.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.d.warehouses[id]; ok {
		return &w, nil
	}
	return nil, domain.ErrNotFound
}

func (r *warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.d.warehouses {
		cp := w
		out = append(out, &cp)
	}
	return out, nil
}
