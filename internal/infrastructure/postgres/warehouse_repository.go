package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, address, active, requires_transport, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Address, w.Active, w.RequiresTransport)
	if err != nil {
		return translateError("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID; nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, address, active, requires_transport, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Address, &w.Active, &w.RequiresTransport, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get warehouse", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, address = $3, active = $4, requires_transport = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Address, w.Active, w.RequiresTransport)
	if err != nil {
		return translateError("update warehouse", err)
	}
	return nil
}

// List lista bodegas con paginación.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, address, active, requires_transport, created_at, updated_at
		FROM warehouses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError("list warehouses", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Active, &w.RequiresTransport, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, translateError("scan warehouse", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
