package entity

import "time"

// StockRecord representa la cantidad actual de un producto en una bodega,
// opcionalmente separada por lote. Como máximo existe un registro por
// (producto, bodega, lote); el stock sin lote usa Lot == "".
// Se muta exclusivamente a través del registrador de movimientos; la cantidad
// nunca es negativa. Un registro en cero puede persistir como placeholder.
type StockRecord struct {
	ID          string
	ProductID   string
	WarehouseID string
	Lot         string // "" = sin lote
	Quantity    int64  // invariante: >= 0
	Expiration  *time.Time
	UpdatedAt   time.Time
}
