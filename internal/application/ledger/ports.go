package ledger

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: cada llamada al
// registrador y cada transición multi-línea de un traslado ocurren dentro de
// exactamente una transacción (Commit si fn devuelve nil, Rollback si no).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
	) error) error

	// RunTransfer añade el repositorio de traslados a la misma transacción,
	// para las transiciones enviar/recibir/cancelar.
	RunTransfer(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
