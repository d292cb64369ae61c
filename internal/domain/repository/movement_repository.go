package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos.
type MovementFilter struct {
	WarehouseID string
	ProductID   string
	Type        entity.MovementType
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia para el libro de movimientos.
// Es append-only: los movimientos se crean una vez y nunca se actualizan ni borran.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// ListByDocument devuelve los movimientos ligados a un número de documento,
	// en orden de creación (base de la lógica de reversa).
	ListByDocument(ctx context.Context, documentNumber string) ([]*entity.Movement, error)
	// List devuelve el historial filtrado por fecha/bodega/producto/tipo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
