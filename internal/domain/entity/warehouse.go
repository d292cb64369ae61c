package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// RequiresTransport marca bodegas que necesitan transporte externo para traslados.
type Warehouse struct {
	ID                string
	Name              string
	Address           string
	Active            bool
	RequiresTransport bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
