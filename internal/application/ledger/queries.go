package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// Queries agrupa la superficie de consulta para los colaboradores de
// reportería: stock bajo mínimo / sobre máximo, vencimientos, historial de
// movimientos y ranking de productos más movidos. Solo lecturas sobre el pool.
type Queries struct {
	stockRepo  repository.StockRecordRepository
	movRepo    repository.MovementRepository
	reportRepo repository.ReportRepository
}

// NewQueries construye la superficie de consulta.
func NewQueries(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	reportRepo repository.ReportRepository,
) *Queries {
	return &Queries{stockRepo: stockRepo, movRepo: movRepo, reportRepo: reportRepo}
}

// CurrentQuantity cantidad actual de un (producto, bodega, lote).
func (q *Queries) CurrentQuantity(ctx context.Context, productID, warehouseID, lot string) (int64, error) {
	if productID == "" || warehouseID == "" {
		return 0, domain.ErrInvalidInput
	}
	return q.stockRepo.CurrentQuantity(ctx, productID, warehouseID, lot)
}

// TotalQuantity total de un producto entre lotes; warehouseID "" = todas las bodegas.
func (q *Queries) TotalQuantity(ctx context.Context, productID, warehouseID string) (int64, error) {
	if productID == "" {
		return 0, domain.ErrInvalidInput
	}
	return q.stockRepo.TotalQuantity(ctx, productID, warehouseID)
}

// StockByWarehouse registros de stock de una bodega con paginación.
func (q *Queries) StockByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return q.stockRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
}

// MovementHistory historial filtrado por rango de fechas, bodega, producto y tipo.
func (q *Queries) MovementHistory(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, domain.ErrUnknownMovementType
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return q.movRepo.List(ctx, filter)
}

// StockBelowMinimum productos bajo su umbral mínimo (por bodega o global).
func (q *Queries) StockBelowMinimum(ctx context.Context, warehouseID string) ([]repository.StockAlertItem, error) {
	return q.reportRepo.StockBelowMinimum(ctx, warehouseID)
}

// StockAboveMaximum productos sobre su umbral máximo.
func (q *Queries) StockAboveMaximum(ctx context.Context, warehouseID string) ([]repository.StockAlertItem, error) {
	return q.reportRepo.StockAboveMaximum(ctx, warehouseID)
}

// ExpiringWithin lotes que vencen dentro de los próximos days días.
func (q *Queries) ExpiringWithin(ctx context.Context, days int) ([]repository.ExpiringItem, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return q.reportRepo.ExpiringWithin(ctx, days)
}

// Expired lotes vencidos con existencia.
func (q *Queries) Expired(ctx context.Context) ([]repository.ExpiringItem, error) {
	return q.reportRepo.Expired(ctx)
}

// MostMovedProducts ranking por número de movimientos en el periodo.
func (q *Queries) MostMovedProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.MovedProductItem, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}
	return q.reportRepo.MostMovedProducts(ctx, from, to, limit)
}
