package ledger

import (
	"context"
	"fmt"

	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
	"github.com/tu-usuario/kardex-api/pkg/logger"
)

// ReversalLine cantidad (magnitud) a revertir por producto.
type ReversalLine struct {
	ProductID string
	Quantity  int64
}

// Reversal aplica los movimientos inversos cuando un documento que cambió
// stock se cancela o se reduce. La reversa se calcula sobre el neto ya movido
// bajo el número de documento, de modo que reintentar una reversa ya aplicada
// no acredite dos veces (el neto en cero no deja nada por revertir).
type Reversal struct {
	txRunner      TxRunner
	recorder      *Recorder
	warehouseRepo repository.WarehouseRepository
	// strict: una bodega inactiva o inexistente aborta toda la reversa.
	// En modo laxo la línea se omite con un warning y se continúa.
	strict bool
	log    *logger.Logger
}

// NewReversal construye la lógica de compensación. strict define la política
// ante bodegas no disponibles (configuración explícita, no inferida por caso).
func NewReversal(
	txRunner TxRunner,
	recorder *Recorder,
	warehouseRepo repository.WarehouseRepository,
	strict bool,
	log *logger.Logger,
) *Reversal {
	return &Reversal{
		txRunner:      txRunner,
		recorder:      recorder,
		warehouseRepo: warehouseRepo,
		strict:        strict,
		log:           log,
	}
}

// grupo de movimientos originales sobre un mismo registro de stock.
type reversalGroup struct {
	warehouseID string
	lot         string
	net         int64
	firstType   entity.MovementType
}

// ReverseDocument localiza los movimientos originales del documento y aplica,
// por producto, solo la diferencia solicitada (parcial) o la magnitud neta
// completa, con el tipo compensatorio y dentro de una sola transacción.
func (rv *Reversal) ReverseDocument(ctx context.Context, documentNumber string, lines []ReversalLine) ([]*entity.Movement, error) {
	if documentNumber == "" || len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var reversed []*entity.Movement
	err := rv.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
	) error {
		originals, err := movRepo.ListByDocument(ctx, documentNumber)
		if err != nil {
			return err
		}
		if len(originals) == 0 {
			return fmt.Errorf("documento %s sin movimientos: %w", documentNumber, domain.ErrNotFound)
		}

		for _, line := range lines {
			movs, err := rv.reverseLine(ctx, stockRepo, movRepo, documentNumber, line, originals)
			if err != nil {
				return err
			}
			reversed = append(reversed, movs...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reversed, nil
}

// reverseLine revierte hasta line.Quantity unidades del producto, recorriendo
// los registros de stock que el documento tocó. El neto por registro acota la
// magnitud a revertir para evitar acreditar de más.
func (rv *Reversal) reverseLine(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	documentNumber string,
	line ReversalLine,
	originals []*entity.Movement,
) ([]*entity.Movement, error) {
	groups := groupByRecord(originals, line.ProductID)
	if len(groups) == 0 {
		return nil, fmt.Errorf("documento %s no movió el producto %s: %w",
			documentNumber, line.ProductID, domain.ErrNotFound)
	}

	var out []*entity.Movement
	remaining := line.Quantity
	for _, g := range groups {
		if remaining == 0 {
			break
		}
		if g.net == 0 {
			continue // ya revertido por completo; reintento idempotente
		}

		warehouse, err := rv.warehouseRepo.GetByID(ctx, g.warehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil || !warehouse.Active {
			if rv.strict {
				return nil, fmt.Errorf("bodega %s para reversa del documento %s: %w",
					g.warehouseID, documentNumber, domain.ErrNoWarehouseAvailable)
			}
			rv.log.Warn().
				Str("document_number", documentNumber).
				Str("product_id", line.ProductID).
				Str("warehouse_id", g.warehouseID).
				Msg("bodega no disponible, línea de reversa omitida")
			continue
		}

		magnitude := g.net
		if magnitude < 0 {
			magnitude = -magnitude
		}
		if magnitude > remaining {
			magnitude = remaining
		}

		// El inverso del neto: si el documento sacó stock, la reversa entra.
		delta := magnitude
		if g.net > 0 {
			delta = -magnitude
		}

		mov, err := rv.recorder.ApplyInTx(ctx, stockRepo, movRepo, RecordInput{
			ProductID:      line.ProductID,
			WarehouseID:    g.warehouseID,
			Lot:            g.lot,
			Delta:          delta,
			Type:           g.firstType.Reverse(),
			Observation:    fmt.Sprintf("reversa documento %s", documentNumber),
			DocumentNumber: documentNumber,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, mov)
		remaining -= magnitude
	}
	return out, nil
}

// groupByRecord agrega los movimientos de un producto por (bodega, lote)
// preservando el orden de aparición, con el neto y el tipo del primer movimiento.
func groupByRecord(originals []*entity.Movement, productID string) []*reversalGroup {
	var groups []*reversalGroup
	index := make(map[string]*reversalGroup)
	for _, m := range originals {
		if m.ProductID != productID {
			continue
		}
		key := m.WarehouseID + "|" + m.Lot
		g, ok := index[key]
		if !ok {
			g = &reversalGroup{warehouseID: m.WarehouseID, lot: m.Lot, firstType: m.Type}
			index[key] = g
			groups = append(groups, g)
		}
		g.net += m.Quantity
	}
	return groups
}
