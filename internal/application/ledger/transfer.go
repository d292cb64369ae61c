package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
	"github.com/tu-usuario/kardex-api/pkg/logger"
)

// TransferLineInput línea solicitada al crear o editar un traslado.
type TransferLineInput struct {
	ProductID  string
	Quantity   int64
	Lot        string
	Expiration *time.Time
}

// CreateTransferInput entrada para crear un traslado en borrador.
type CreateTransferInput struct {
	OriginWarehouseID      string
	DestinationWarehouseID string
	Vehicle                string
	Driver                 string
	Lines                  []TransferLineInput
	ActorID                string
}

// TransferWorkflow coordina el traslado multi-línea de stock entre dos
// bodegas a través de la máquina de estados borrador → enviado → recibido,
// con cancelación compensada desde borrador o enviado. Cada transición que
// mueve stock envuelve sus llamadas al registrador en una sola transacción:
// o todas las líneas aplican o el traslado queda como estaba.
type TransferWorkflow struct {
	txRunner      TxRunner
	recorder      *Recorder
	transferRepo  repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewTransferWorkflow construye el workflow de traslados.
func NewTransferWorkflow(
	txRunner TxRunner,
	recorder *Recorder,
	transferRepo repository.TransferRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *TransferWorkflow {
	return &TransferWorkflow{
		txRunner:      txRunner,
		recorder:      recorder,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// Create persiste el traslado en borrador con sus líneas. No mueve stock.
func (w *TransferWorkflow) Create(ctx context.Context, input CreateTransferInput) (*entity.Transfer, error) {
	if input.OriginWarehouseID == "" || input.DestinationWarehouseID == "" ||
		input.OriginWarehouseID == input.DestinationWarehouseID || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := w.checkWarehouse(ctx, input.OriginWarehouseID); err != nil {
		return nil, err
	}
	if err := w.checkWarehouse(ctx, input.DestinationWarehouseID); err != nil {
		return nil, err
	}
	lines, totalQty, err := buildLines(input.Lines)
	if err != nil {
		return nil, err
	}

	transfer := &entity.Transfer{
		ID:                     uuid.New().String(),
		OriginWarehouseID:      input.OriginWarehouseID,
		DestinationWarehouseID: input.DestinationWarehouseID,
		Status:                 entity.TransferBorrador,
		Vehicle:                input.Vehicle,
		Driver:                 input.Driver,
		TotalLines:             len(lines),
		TotalQuantity:          totalQty,
		CreatedBy:              input.ActorID,
		CreatedAt:              time.Now(),
		Lines:                  lines,
	}
	for _, l := range transfer.Lines {
		l.TransferID = transfer.ID
	}
	if err := w.transferRepo.Create(ctx, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// Send ejecuta la transición enviar: solo desde borrador. Por cada línea
// registra una salida_traslado contra la bodega de origen por la cantidad
// solicitada; si cualquier línea falla, nada aplica y el traslado sigue en
// borrador. Estampa la fecha de envío y pasa a enviado.
func (w *TransferWorkflow) Send(ctx context.Context, transferID, actorID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := w.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := w.lockTransfer(ctx, transferRepo, transferID)
		if err != nil {
			return err
		}
		if !transfer.Status.CanSend() {
			return &domain.InvalidStateError{Current: string(transfer.Status), Attempted: "enviar"}
		}

		now := time.Now()
		for _, line := range transfer.Lines {
			if _, err := w.recorder.ApplyInTx(ctx, stockRepo, movRepo, RecordInput{
				ProductID:      line.ProductID,
				WarehouseID:    transfer.OriginWarehouseID,
				Lot:            line.Lot,
				Expiration:     line.Expiration,
				Delta:          -line.RequestedQty,
				Type:           entity.MovementSalidaTraslado,
				Observation:    fmt.Sprintf("envío traslado #%d", transfer.Number),
				DocumentNumber: transfer.DocumentNumber(),
				ActorID:        actorID,
			}); err != nil {
				return err
			}
			line.SentQty = line.RequestedQty
			if err := transferRepo.UpdateLine(ctx, line); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferEnviado
		transfer.SentAt = &now
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Receive ejecuta la transición recibir: solo desde enviado. Por cada línea
// registra una entrada_traslado en la bodega destino (lote y vencimiento se
// conservan) y pasa al estado terminal recibido.
func (w *TransferWorkflow) Receive(ctx context.Context, transferID, actorID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := w.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := w.lockTransfer(ctx, transferRepo, transferID)
		if err != nil {
			return err
		}
		if !transfer.Status.CanReceive() {
			return &domain.InvalidStateError{Current: string(transfer.Status), Attempted: "recibir"}
		}

		now := time.Now()
		for _, line := range transfer.Lines {
			if _, err := w.recorder.ApplyInTx(ctx, stockRepo, movRepo, RecordInput{
				ProductID:      line.ProductID,
				WarehouseID:    transfer.DestinationWarehouseID,
				Lot:            line.Lot,
				Expiration:     line.Expiration,
				Delta:          line.SentQty,
				Type:           entity.MovementEntradaTraslado,
				Observation:    fmt.Sprintf("recepción traslado #%d", transfer.Number),
				DocumentNumber: transfer.DocumentNumber(),
				ActorID:        actorID,
			}); err != nil {
				return err
			}
			line.ReceivedQty = line.SentQty
			if err := transferRepo.UpdateLine(ctx, line); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferRecibido
		transfer.ReceivedAt = &now
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel ejecuta la transición cancelar desde borrador o enviado. Si el stock
// ya salió del origen (enviado), registra entradas de cancelación de traslado
// de vuelta al origen antes de marcar el estado terminal cancelado. La razón
// es obligatoria.
func (w *TransferWorkflow) Cancel(ctx context.Context, transferID, reason, actorID string) (*entity.Transfer, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Transfer
	err := w.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := w.lockTransfer(ctx, transferRepo, transferID)
		if err != nil {
			return err
		}
		if !transfer.Status.CanCancel() {
			return &domain.InvalidStateError{Current: string(transfer.Status), Attempted: "cancelar"}
		}

		// En borrador no hubo movimientos: no hay nada que compensar.
		if transfer.Status == entity.TransferEnviado {
			for _, line := range transfer.Lines {
				if _, err := w.recorder.ApplyInTx(ctx, stockRepo, movRepo, RecordInput{
					ProductID:      line.ProductID,
					WarehouseID:    transfer.OriginWarehouseID,
					Lot:            line.Lot,
					Expiration:     line.Expiration,
					Delta:          line.SentQty,
					Type:           entity.MovementEntradaCancelacionTraslado,
					Observation:    fmt.Sprintf("cancelación traslado #%d: %s", transfer.Number, reason),
					DocumentNumber: transfer.DocumentNumber(),
					ActorID:        actorID,
				}); err != nil {
					return err
				}
			}
		}

		transfer.Status = entity.TransferCancelado
		transfer.CancelReason = reason
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditLines reemplaza las líneas al completo. Solo permitido en borrador;
// cualquier otro estado rechaza con InvalidStateError sin efectos.
func (w *TransferWorkflow) EditLines(ctx context.Context, transferID string, newLines []TransferLineInput) (*entity.Transfer, error) {
	if len(newLines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Transfer
	err := w.txRunner.RunTransfer(ctx, func(
		_ repository.StockRecordRepository,
		_ repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := w.lockTransfer(ctx, transferRepo, transferID)
		if err != nil {
			return err
		}
		if !transfer.Status.CanEdit() {
			return &domain.InvalidStateError{Current: string(transfer.Status), Attempted: "editar"}
		}

		lines, totalQty, err := buildLines(newLines)
		if err != nil {
			return err
		}
		for _, l := range lines {
			l.TransferID = transfer.ID
		}
		if err := transferRepo.ReplaceLines(ctx, transfer.ID, lines); err != nil {
			return err
		}
		transfer.Lines = lines
		transfer.TotalLines = len(lines)
		transfer.TotalQuantity = totalQty
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get devuelve el traslado con sus líneas.
func (w *TransferWorkflow) Get(ctx context.Context, transferID string) (*entity.Transfer, error) {
	transfer, err := w.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List lista traslados, opcionalmente por estado.
func (w *TransferWorkflow) List(ctx context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	return w.transferRepo.List(ctx, status, limit, offset)
}

func (w *TransferWorkflow) lockTransfer(ctx context.Context, transferRepo repository.TransferRepository, id string) (*entity.Transfer, error) {
	transfer, err := transferRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

func (w *TransferWorkflow) checkWarehouse(ctx context.Context, id string) error {
	warehouse, err := w.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil || !warehouse.Active {
		return domain.ErrNoWarehouseAvailable
	}
	return nil
}

func buildLines(inputs []TransferLineInput) ([]*entity.TransferLine, int64, error) {
	lines := make([]*entity.TransferLine, 0, len(inputs))
	var totalQty int64
	for _, in := range inputs {
		if in.ProductID == "" || in.Quantity <= 0 {
			return nil, 0, domain.ErrInvalidInput
		}
		lines = append(lines, &entity.TransferLine{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			RequestedQty: in.Quantity,
			Lot:          in.Lot,
			Expiration:   in.Expiration,
		})
		totalQty += in.Quantity
	}
	return lines, totalQty, nil
}
