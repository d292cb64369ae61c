package repository

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traslados y sus líneas.
type TransferRepository interface {
	// Create persiste el traslado con sus líneas y asigna el consecutivo.
	Create(ctx context.Context, transfer *entity.Transfer) error
	// GetByID devuelve el traslado con líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la cabecera del traslado dentro de la transacción
	// para que las transiciones concurrentes se serialicen.
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	// Update escribe cabecera (estado, timestamps, razón de cancelación).
	Update(ctx context.Context, transfer *entity.Transfer) error
	// UpdateLine escribe las cantidades enviada/recibida de una línea.
	UpdateLine(ctx context.Context, line *entity.TransferLine) error
	// ReplaceLines reemplaza las líneas al completo (solo permitido en borrador;
	// el workflow valida el estado antes de llamar).
	ReplaceLines(ctx context.Context, transferID string, lines []*entity.TransferLine) error
	// List lista traslados por estado (opcional) con paginación.
	List(ctx context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error)
}
