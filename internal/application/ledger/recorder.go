package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
	"github.com/tu-usuario/kardex-api/pkg/logger"
)

// RecordInput entrada para registrar un movimiento de inventario.
// Delta es un entero con signo distinto de cero cuyo signo debe coincidir con
// la dirección del tipo (entrada_* positivo, salida_* negativo).
type RecordInput struct {
	ProductID      string
	WarehouseID    string
	Lot            string // "" = sin lote
	Expiration     *time.Time
	Delta          int64
	Type           entity.MovementType
	Observation    string
	DocumentNumber string
	ActorID        string
}

// Recorder es el único camino de mutación de los registros de stock.
// Cada llamada a Record ejecuta dentro de una sola transacción: el update de
// cantidad y la inserción del movimiento suceden juntos o no sucede nada.
// La centralización es lo que hace completa la auditoría y aplicable en un
// solo lugar el invariante de no-negatividad.
type Recorder struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewRecorder construye el registrador de movimientos.
func NewRecorder(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *Recorder {
	return &Recorder{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// Record valida la entrada, bloquea la fila de stock (SELECT FOR UPDATE),
// recalcula cantidad_antes + delta bajo el lock y persiste registro y
// movimiento de forma atómica. Si el resultado fuera negativo devuelve
// InsufficientStockError y nada cambia.
func (r *Recorder) Record(ctx context.Context, input RecordInput) (*entity.Movement, error) {
	product, err := r.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err = r.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
	) error {
		mov, err = r.ApplyInTx(ctx, stockRepo, movRepo, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Alerta de umbrales fuera del camino crítico: nunca bloquea ni afecta
	// el resultado del movimiento ya confirmado.
	go r.checkThresholds(product, mov)

	return mov, nil
}

// validateInput verifica tipo, signo del delta y existencia/actividad de
// producto y bodega antes de abrir la transacción.
func (r *Recorder) validateInput(ctx context.Context, input RecordInput) (*entity.Product, error) {
	if input.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrUnknownMovementType
	}
	if dir := input.Type.Direction(); (dir > 0) != (input.Delta > 0) {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := r.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Active {
		return nil, domain.ErrInvalidInput
	}

	warehouse, err := r.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || !warehouse.Active {
		return nil, domain.ErrNoWarehouseAvailable
	}
	return product, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usan el workflow de traslados y la
// lógica de reversa para que sus operaciones multi-línea compartan una sola
// transacción. No valida producto/bodega: eso es responsabilidad del caller.
func (r *Recorder) ApplyInTx(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	input RecordInput,
) (*entity.Movement, error) {
	if input.Delta == 0 || !input.Type.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()

	// Bloquea la fila de stock para serializar escritores concurrentes:
	// cantidad_antes se lee con el lock tomado, no con el valor que vio
	// cualquier validación previa.
	record, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID, input.Lot)
	if err != nil {
		return nil, err
	}
	created := false
	if record == nil {
		if input.Delta < 0 {
			return nil, &domain.InsufficientStockError{
				ProductID:   input.ProductID,
				WarehouseID: input.WarehouseID,
				Requested:   -input.Delta,
				Available:   0,
			}
		}
		// Creación perezosa en la primera entrada a la tupla (producto, bodega, lote).
		record = &entity.StockRecord{
			ID:          uuid.New().String(),
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			Lot:         input.Lot,
			Quantity:    0,
			Expiration:  input.Expiration,
		}
		created = true
	}

	before := record.Quantity
	after := before + input.Delta
	if after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			Requested:   -input.Delta,
			Available:   before,
		}
	}

	record.Quantity = after
	record.UpdatedAt = now
	if record.Expiration == nil && input.Expiration != nil {
		record.Expiration = input.Expiration
	}

	if created {
		if err := stockRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	} else if err := stockRepo.UpdateQuantity(ctx, record); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:             uuid.New().String(),
		StockRecordID:  record.ID,
		ProductID:      input.ProductID,
		WarehouseID:    input.WarehouseID,
		Lot:            input.Lot,
		Type:           input.Type,
		Quantity:       input.Delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Observation:    input.Observation,
		DocumentNumber: input.DocumentNumber,
		ActorID:        input.ActorID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// checkThresholds registra una alerta si el movimiento dejó el registro por
// debajo del mínimo o por encima del máximo del producto. Solo informativo.
func (r *Recorder) checkThresholds(product *entity.Product, mov *entity.Movement) {
	if r.log == nil || product == nil || mov == nil {
		return
	}
	if product.MinStock > 0 && mov.QuantityAfter < product.MinStock {
		r.log.Warn().
			Str("product_id", product.ID).
			Str("warehouse_id", mov.WarehouseID).
			Int64("quantity", mov.QuantityAfter).
			Int64("min_stock", product.MinStock).
			Msg("stock por debajo del mínimo")
	}
	if product.MaxStock > 0 && mov.QuantityAfter > product.MaxStock {
		r.log.Warn().
			Str("product_id", product.ID).
			Str("warehouse_id", mov.WarehouseID).
			Int64("quantity", mov.QuantityAfter).
			Int64("max_stock", product.MaxStock).
			Msg("stock por encima del máximo")
	}
}
