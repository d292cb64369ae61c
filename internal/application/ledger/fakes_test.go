package ledger_test

import (
	"context"
	"sort"

	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
	"github.com/tu-usuario/kardex-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso del motor de inventario.
//
// fakeDB concentra todo el estado; los repos fake operan sobre él devolviendo
// y almacenando copias, igual que un repo real contra la DB. fakeTxRunner
// toma un snapshot antes de ejecutar fn y lo restaura si fn falla, de modo
// que los tests de atomicidad observen rollback de verdad.
// ──────────────────────────────────────────────────────────────────────────────

type fakeDB struct {
	stock       map[string]*entity.StockRecord // key: productID|warehouseID|lot
	movements   []*entity.Movement
	transfers   map[string]*entity.Transfer
	transferSeq int64
	products    map[string]*entity.Product
	warehouses  map[string]*entity.Warehouse
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		stock:      make(map[string]*entity.StockRecord),
		transfers:  make(map[string]*entity.Transfer),
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
	}
}

func stockKey(productID, warehouseID, lot string) string {
	return productID + "|" + warehouseID + "|" + lot
}

func cloneRecord(r *entity.StockRecord) *entity.StockRecord {
	c := *r
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

func cloneLine(l *entity.TransferLine) *entity.TransferLine {
	c := *l
	return &c
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	c := *t
	c.Lines = make([]*entity.TransferLine, len(t.Lines))
	for i, l := range t.Lines {
		c.Lines[i] = cloneLine(l)
	}
	return &c
}

func (db *fakeDB) snapshot() *fakeDB {
	snap := newFakeDB()
	snap.transferSeq = db.transferSeq
	for k, v := range db.stock {
		snap.stock[k] = cloneRecord(v)
	}
	snap.movements = make([]*entity.Movement, len(db.movements))
	copy(snap.movements, db.movements)
	for k, v := range db.transfers {
		snap.transfers[k] = cloneTransfer(v)
	}
	snap.products = db.products
	snap.warehouses = db.warehouses
	return snap
}

func (db *fakeDB) restore(snap *fakeDB) {
	db.stock = snap.stock
	db.movements = snap.movements
	db.transfers = snap.transfers
	db.transferSeq = snap.transferSeq
}

// ── Seeds ─────────────────────────────────────────────────────────────────────

func seedProduct(db *fakeDB, id string, minStock, maxStock int64) *entity.Product {
	p := &entity.Product{ID: id, SKU: "SKU-" + id, Name: "producto " + id,
		MinStock: minStock, MaxStock: maxStock, Active: true}
	db.products[id] = p
	return p
}

func seedWarehouse(db *fakeDB, id string, active bool) *entity.Warehouse {
	w := &entity.Warehouse{ID: id, Name: "bodega " + id, Active: active}
	db.warehouses[id] = w
	return w
}

func seedStock(db *fakeDB, productID, warehouseID, lot string, qty int64) {
	db.stock[stockKey(productID, warehouseID, lot)] = &entity.StockRecord{
		ID:          "sr-" + stockKey(productID, warehouseID, lot),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Lot:         lot,
		Quantity:    qty,
	}
}

func stockQty(db *fakeDB, productID, warehouseID, lot string) int64 {
	if r, ok := db.stock[stockKey(productID, warehouseID, lot)]; ok {
		return r.Quantity
	}
	return 0
}

// ── StockRecordRepository ─────────────────────────────────────────────────────

type fakeStockRepo struct{ db *fakeDB }

func (f *fakeStockRepo) Get(_ context.Context, productID, warehouseID, lot string) (*entity.StockRecord, error) {
	if r, ok := f.db.stock[stockKey(productID, warehouseID, lot)]; ok {
		return cloneRecord(r), nil
	}
	return nil, nil
}

func (f *fakeStockRepo) GetForUpdate(ctx context.Context, productID, warehouseID, lot string) (*entity.StockRecord, error) {
	return f.Get(ctx, productID, warehouseID, lot)
}

func (f *fakeStockRepo) Create(_ context.Context, record *entity.StockRecord) error {
	f.db.stock[stockKey(record.ProductID, record.WarehouseID, record.Lot)] = cloneRecord(record)
	return nil
}

func (f *fakeStockRepo) UpdateQuantity(_ context.Context, record *entity.StockRecord) error {
	f.db.stock[stockKey(record.ProductID, record.WarehouseID, record.Lot)] = cloneRecord(record)
	return nil
}

func (f *fakeStockRepo) CurrentQuantity(_ context.Context, productID, warehouseID, lot string) (int64, error) {
	return stockQty(f.db, productID, warehouseID, lot), nil
}

func (f *fakeStockRepo) TotalQuantity(_ context.Context, productID, warehouseID string) (int64, error) {
	var total int64
	for _, r := range f.db.stock {
		if r.ProductID != productID {
			continue
		}
		if warehouseID != "" && r.WarehouseID != warehouseID {
			continue
		}
		total += r.Quantity
	}
	return total, nil
}

func (f *fakeStockRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, r := range f.db.stock {
		if r.WarehouseID == warehouseID {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type fakeMovementRepo struct{ db *fakeDB }

func (f *fakeMovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	f.db.movements = append(f.db.movements, cloneMovement(movement))
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range f.db.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) ListByDocument(_ context.Context, documentNumber string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range f.db.movements {
		if m.DocumentNumber == documentNumber {
			out = append(out, cloneMovement(m))
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range f.db.movements {
		if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

// ── TransferRepository ────────────────────────────────────────────────────────

type fakeTransferRepo struct{ db *fakeDB }

func (f *fakeTransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	f.db.transferSeq++
	transfer.Number = f.db.transferSeq
	f.db.transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (f *fakeTransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	if t, ok := f.db.transfers[id]; ok {
		return cloneTransfer(t), nil
	}
	return nil, nil
}

func (f *fakeTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeTransferRepo) Update(_ context.Context, transfer *entity.Transfer) error {
	stored, ok := f.db.transfers[transfer.ID]
	if !ok {
		return nil
	}
	updated := cloneTransfer(transfer)
	if len(updated.Lines) == 0 {
		updated.Lines = stored.Lines
	}
	f.db.transfers[transfer.ID] = updated
	return nil
}

func (f *fakeTransferRepo) UpdateLine(_ context.Context, line *entity.TransferLine) error {
	t, ok := f.db.transfers[line.TransferID]
	if !ok {
		return nil
	}
	for i, l := range t.Lines {
		if l.ID == line.ID {
			t.Lines[i] = cloneLine(line)
		}
	}
	return nil
}

func (f *fakeTransferRepo) ReplaceLines(_ context.Context, transferID string, lines []*entity.TransferLine) error {
	t, ok := f.db.transfers[transferID]
	if !ok {
		return nil
	}
	t.Lines = make([]*entity.TransferLine, len(lines))
	for i, l := range lines {
		t.Lines[i] = cloneLine(l)
	}
	return nil
}

func (f *fakeTransferRepo) List(_ context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range f.db.transfers {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, cloneTransfer(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return paginate(out, limit, offset), nil
}

// ── ProductRepository / WarehouseRepository ───────────────────────────────────

type fakeProductRepo struct{ db *fakeDB }

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.db.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.db.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.db.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.db.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.db.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

type fakeWarehouseRepo struct{ db *fakeDB }

func (f *fakeWarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	f.db.warehouses[warehouse.ID] = warehouse
	return nil
}

func (f *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return f.db.warehouses[id], nil
}

func (f *fakeWarehouseRepo) Update(_ context.Context, warehouse *entity.Warehouse) error {
	f.db.warehouses[warehouse.ID] = warehouse
	return nil
}

func (f *fakeWarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.db.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

// ── TxRunner con rollback por snapshot ────────────────────────────────────────

type fakeTxRunner struct{ db *fakeDB }

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
) error) error {
	snap := f.db.snapshot()
	if err := fn(&fakeStockRepo{db: f.db}, &fakeMovementRepo{db: f.db}); err != nil {
		f.db.restore(snap)
		return err
	}
	return nil
}

func (f *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
) error) error {
	snap := f.db.snapshot()
	if err := fn(&fakeStockRepo{db: f.db}, &fakeMovementRepo{db: f.db}, &fakeTransferRepo{db: f.db}); err != nil {
		f.db.restore(snap)
		return err
	}
	return nil
}

// ── Helpers de construcción ───────────────────────────────────────────────────

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func buildRecorder(db *fakeDB) *ledger.Recorder {
	return ledger.NewRecorder(
		&fakeTxRunner{db: db},
		&fakeProductRepo{db: db},
		&fakeWarehouseRepo{db: db},
		logger.Nop(),
	)
}

func buildReversal(db *fakeDB, strict bool) *ledger.Reversal {
	return ledger.NewReversal(
		&fakeTxRunner{db: db},
		buildRecorder(db),
		&fakeWarehouseRepo{db: db},
		strict,
		logger.Nop(),
	)
}

func buildWorkflow(db *fakeDB) *ledger.TransferWorkflow {
	return ledger.NewTransferWorkflow(
		&fakeTxRunner{db: db},
		buildRecorder(db),
		&fakeTransferRepo{db: db},
		&fakeWarehouseRepo{db: db},
		logger.Nop(),
	)
}
