package repository

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos (DIP).
// El motor de inventario solo necesita leerlos; el alta existe para poder
// operar el servicio de forma autónoma.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
