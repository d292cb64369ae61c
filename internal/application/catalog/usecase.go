package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// UseCase administra el catálogo de productos y bodegas que el motor de
// inventario referencia. El motor solo lee id, umbrales y flag de actividad;
// el alta/edición existe para operar el servicio de forma autónoma.
type UseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository) *UseCase {
	return &UseCase{productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// CreateProduct da de alta un producto activo con sus umbrales.
func (uc *UseCase) CreateProduct(ctx context.Context, sku, name string, minStock, maxStock int64) (*entity.Product, error) {
	if sku == "" || name == "" || minStock < 0 || maxStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.productRepo.GetBySKU(ctx, sku); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      name,
		MinStock:  minStock,
		MaxStock:  maxStock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct actualiza nombre, umbrales y actividad.
func (uc *UseCase) UpdateProduct(ctx context.Context, id, name string, minStock, maxStock int64, active bool) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = name
	p.MinStock = minStock
	p.MaxStock = maxStock
	p.Active = active
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct devuelve un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListProducts lista productos con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, limit, offset)
}

// CreateWarehouse da de alta una bodega activa.
func (uc *UseCase) CreateWarehouse(ctx context.Context, name, address string, requiresTransport bool) (*entity.Warehouse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:                uuid.New().String(),
		Name:              name,
		Address:           address,
		Active:            true,
		RequiresTransport: requiresTransport,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// UpdateWarehouse actualiza nombre, dirección, actividad y flag de transporte.
func (uc *UseCase) UpdateWarehouse(ctx context.Context, id, name, address string, active, requiresTransport bool) (*entity.Warehouse, error) {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	w.Name = name
	w.Address = address
	w.Active = active
	w.RequiresTransport = requiresTransport
	w.UpdatedAt = time.Now()
	if err := uc.warehouseRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetWarehouse devuelve una bodega por ID.
func (uc *UseCase) GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// ListWarehouses lista bodegas con paginación.
func (uc *UseCase) ListWarehouses(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(ctx, limit, offset)
}
