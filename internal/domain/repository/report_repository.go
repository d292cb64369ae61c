package repository

import (
	"context"
	"time"
)

// StockAlertItem es una fila de los reportes de stock bajo mínimo / sobre máximo.
type StockAlertItem struct {
	ProductID   string
	SKU         string
	ProductName string
	WarehouseID string
	Quantity    int64
	MinStock    int64
	MaxStock    int64
}

// ExpiringItem es una fila de los reportes de vencimiento por lote.
type ExpiringItem struct {
	ProductID   string
	SKU         string
	ProductName string
	WarehouseID string
	Lot         string
	Quantity    int64
	Expiration  time.Time
}

// MovedProductItem es una fila del ranking de productos más movidos en un periodo.
type MovedProductItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	MovementCount int64
	TotalEntradas int64 // suma de deltas positivos
	TotalSalidas  int64 // suma de |deltas negativos|
}

// ReportRepository define el puerto de consultas de reporte sobre el libro de
// inventario. Solo lecturas agregadas; nunca participa en transacciones de escritura.
type ReportRepository interface {
	// StockBelowMinimum productos cuyo stock total por bodega está bajo su mínimo.
	StockBelowMinimum(ctx context.Context, warehouseID string) ([]StockAlertItem, error)
	// StockAboveMaximum productos cuyo stock total por bodega supera su máximo (> 0).
	StockAboveMaximum(ctx context.Context, warehouseID string) ([]StockAlertItem, error)
	// ExpiringWithin lotes con vencimiento dentro de los próximos days días.
	ExpiringWithin(ctx context.Context, days int) ([]ExpiringItem, error)
	// Expired lotes ya vencidos con cantidad > 0.
	Expired(ctx context.Context) ([]ExpiringItem, error)
	// MostMovedProducts ranking de productos por número de movimientos en el periodo.
	MostMovedProducts(ctx context.Context, from, to time.Time, limit int) ([]MovedProductItem, error)
}
