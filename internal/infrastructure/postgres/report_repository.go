package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de reporte sobre el libro de inventario.
// Solo lecturas; siempre atado al pool.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockBelowMinimum productos activos cuyo stock (agregado por bodega, o en la
// bodega indicada) está por debajo de su mínimo. Incluye productos sin registro
// de stock (cantidad 0) vía LEFT JOIN.
func (r *ReportRepo) StockBelowMinimum(ctx context.Context, warehouseID string) ([]repository.StockAlertItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(s.warehouse_id, ''), COALESCE(SUM(s.quantity), 0), p.min_stock, p.max_stock
		FROM products p
		LEFT JOIN stock_records s ON s.product_id = p.id`
	var args []any
	if warehouseID != "" {
		query += ` AND s.warehouse_id = $1`
		args = append(args, warehouseID)
	}
	query += `
		WHERE p.active AND p.min_stock > 0
		GROUP BY p.id, p.sku, p.name, s.warehouse_id, p.min_stock, p.max_stock
		HAVING COALESCE(SUM(s.quantity), 0) < p.min_stock
		ORDER BY (p.min_stock - COALESCE(SUM(s.quantity), 0)) DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("stock below minimum", err)
	}
	return collectAlertItems(rows)
}

// StockAboveMaximum productos activos cuyo stock supera su máximo (> 0).
func (r *ReportRepo) StockAboveMaximum(ctx context.Context, warehouseID string) ([]repository.StockAlertItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(s.warehouse_id, ''), COALESCE(SUM(s.quantity), 0), p.min_stock, p.max_stock
		FROM products p
		JOIN stock_records s ON s.product_id = p.id`
	var args []any
	if warehouseID != "" {
		query += ` AND s.warehouse_id = $1`
		args = append(args, warehouseID)
	}
	query += `
		WHERE p.active AND p.max_stock > 0
		GROUP BY p.id, p.sku, p.name, s.warehouse_id, p.min_stock, p.max_stock
		HAVING COALESCE(SUM(s.quantity), 0) > p.max_stock
		ORDER BY (COALESCE(SUM(s.quantity), 0) - p.max_stock) DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("stock above maximum", err)
	}
	return collectAlertItems(rows)
}

func collectAlertItems(rows pgx.Rows) ([]repository.StockAlertItem, error) {
	defer rows.Close()
	var list []repository.StockAlertItem
	for rows.Next() {
		var it repository.StockAlertItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.WarehouseID,
			&it.Quantity, &it.MinStock, &it.MaxStock); err != nil {
			return nil, translateError("scan stock alert", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ExpiringWithin lotes con existencia que vencen dentro de los próximos days días.
func (r *ReportRepo) ExpiringWithin(ctx context.Context, days int) ([]repository.ExpiringItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, s.warehouse_id, s.lot, s.quantity, s.expiration
		FROM stock_records s
		JOIN products p ON p.id = s.product_id
		WHERE s.quantity > 0 AND s.expiration IS NOT NULL
		  AND s.expiration >= now() AND s.expiration <= now() + ($1 || ' days')::interval
		ORDER BY s.expiration ASC`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, translateError("expiring within", err)
	}
	return collectExpiringItems(rows)
}

// Expired lotes vencidos con existencia.
func (r *ReportRepo) Expired(ctx context.Context) ([]repository.ExpiringItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, s.warehouse_id, s.lot, s.quantity, s.expiration
		FROM stock_records s
		JOIN products p ON p.id = s.product_id
		WHERE s.quantity > 0 AND s.expiration IS NOT NULL AND s.expiration < now()
		ORDER BY s.expiration ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, translateError("expired", err)
	}
	return collectExpiringItems(rows)
}

func collectExpiringItems(rows pgx.Rows) ([]repository.ExpiringItem, error) {
	defer rows.Close()
	var list []repository.ExpiringItem
	for rows.Next() {
		var it repository.ExpiringItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.WarehouseID,
			&it.Lot, &it.Quantity, &it.Expiration); err != nil {
			return nil, translateError("scan expiring item", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// MostMovedProducts ranking de productos por número de movimientos en el periodo,
// con los totales de entradas y salidas.
func (r *ReportRepo) MostMovedProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.MovedProductItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, COUNT(m.id),
			COALESCE(SUM(CASE WHEN m.quantity > 0 THEN m.quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.quantity < 0 THEN -m.quantity ELSE 0 END), 0)
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.created_at >= $1 AND m.created_at <= $2
		GROUP BY p.id, p.sku, p.name
		ORDER BY COUNT(m.id) DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, translateError("most moved products", err)
	}
	defer rows.Close()
	var list []repository.MovedProductItem
	for rows.Next() {
		var it repository.MovedProductItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName,
			&it.MovementCount, &it.TotalEntradas, &it.TotalSalidas); err != nil {
			return nil, translateError("scan moved product", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
