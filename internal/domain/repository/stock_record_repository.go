package repository

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// StockRecordRepository define el puerto para consultar/actualizar registros de stock
// por (producto, bodega, lote). Las escrituras ocurren exclusivamente dentro de la
// transacción del registrador de movimientos; las lecturas no bloquean.
type StockRecordRepository interface {
	// Get devuelve el registro o nil si no existe. Lot "" = sin lote.
	Get(ctx context.Context, productID, warehouseID, lot string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y la devuelve; nil si no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID, lot string) (*entity.StockRecord, error)
	// Create inserta un registro nuevo (creación perezosa en la primera entrada).
	Create(ctx context.Context, record *entity.StockRecord) error
	// UpdateQuantity escribe cantidad y fecha de actualización de un registro existente.
	UpdateQuantity(ctx context.Context, record *entity.StockRecord) error
	// CurrentQuantity devuelve la cantidad de un (producto, bodega, lote); 0 si no hay registro.
	CurrentQuantity(ctx context.Context, productID, warehouseID, lot string) (int64, error)
	// TotalQuantity suma la cantidad de un producto entre lotes. warehouseID "" = todas las bodegas.
	TotalQuantity(ctx context.Context, productID, warehouseID string) (int64, error)
	// ListByWarehouse lista los registros de una bodega con paginación.
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error)
}
