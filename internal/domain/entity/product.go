package entity

import "time"

// Product representa un producto del catálogo (propiedad del subsistema de catálogo).
// El motor de inventario solo lee su ID, los umbrales mínimo/máximo y el flag de actividad.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	MinStock  int64 // umbral mínimo para alertas de reposición
	MaxStock  int64 // umbral máximo para alertas de sobre-stock (0 = sin límite)
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
