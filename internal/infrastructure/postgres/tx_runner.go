package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Errores de lock/serialización salen como ConcurrencyConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRecordRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(stockRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translateError("commit transaction", err)
	}
	return nil
}

// RunTransfer inicia una transacción con los repos del motor más el de
// traslados, para las transiciones enviar/recibir/cancelar/editar.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRecordRepository(tx)
	movRepo := NewMovementRepository(tx)
	transferRepo := NewTransferRepository(tx)

	if err := fn(stockRepo, movRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translateError("commit transaction", err)
	}
	return nil
}
