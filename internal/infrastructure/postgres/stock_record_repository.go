package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx). El lote "" se persiste como cadena vacía para que
// el unique (product_id, warehouse_id, lot) cubra también el stock sin lote.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `id, product_id, warehouse_id, lot, quantity, expiration, updated_at`

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Lot, &s.Quantity, &s.Expiration, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el registro de stock; nil si no existe.
func (r *StockRecordRepo) Get(ctx context.Context, productID, warehouseID, lot string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2 AND lot = $3`
	s, err := scanStockRecord(r.q.QueryRow(ctx, query, productID, warehouseID, lot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get stock record", err)
	}
	return s, nil
}

// GetForUpdate obtiene el registro bloqueando la fila (SELECT FOR UPDATE).
// Los escritores concurrentes sobre el mismo registro se serializan aquí.
func (r *StockRecordRepo) GetForUpdate(ctx context.Context, productID, warehouseID, lot string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2 AND lot = $3
		FOR UPDATE`
	s, err := scanStockRecord(r.q.QueryRow(ctx, query, productID, warehouseID, lot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get stock record for update", err)
	}
	return s, nil
}

// Create inserta un registro nuevo (creación perezosa en la primera entrada).
func (r *StockRecordRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, warehouse_id, lot, quantity, expiration, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.ProductID, record.WarehouseID, record.Lot, record.Quantity, record.Expiration,
	)
	if err != nil {
		return translateError("create stock record", err)
	}
	return nil
}

// UpdateQuantity escribe cantidad, vencimiento y fecha de actualización.
func (r *StockRecordRepo) UpdateQuantity(ctx context.Context, record *entity.StockRecord) error {
	query := `
		UPDATE stock_records SET quantity = $2, expiration = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, record.ID, record.Quantity, record.Expiration)
	if err != nil {
		return translateError("update stock record", err)
	}
	return nil
}

// CurrentQuantity cantidad de un (producto, bodega, lote); 0 si no hay registro.
func (r *StockRecordRepo) CurrentQuantity(ctx context.Context, productID, warehouseID, lot string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM stock_records
		WHERE product_id = $1 AND warehouse_id = $2 AND lot = $3`
	var qty int64
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, lot).Scan(&qty); err != nil {
		return 0, translateError("current quantity", err)
	}
	return qty, nil
}

// TotalQuantity suma el stock de un producto entre lotes; warehouseID "" = todas las bodegas.
func (r *StockRecordRepo) TotalQuantity(ctx context.Context, productID, warehouseID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_records WHERE product_id = $1`
	args := []any{productID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	var qty int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&qty); err != nil {
		return 0, translateError("total quantity", err)
	}
	return qty, nil
}

// ListByWarehouse lista los registros de una bodega con paginación.
func (r *StockRecordRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE warehouse_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, translateError("list stock records", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Lot, &s.Quantity, &s.Expiration, &s.UpdatedAt); err != nil {
			return nil, translateError("scan stock record", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
