package repository

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}
