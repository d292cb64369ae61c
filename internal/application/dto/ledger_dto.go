package dto

import (
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/movements.
// Delta es un entero con signo distinto de cero; su signo debe coincidir con
// la dirección del tipo (entrada positivo, salida negativo).
type RecordMovementRequest struct {
	ProductID      string     `json:"product_id" validate:"required"`
	WarehouseID    string     `json:"warehouse_id" validate:"required"`
	Lot            string     `json:"lot,omitempty"`
	Expiration     *time.Time `json:"expiration,omitempty"`
	Delta          int64      `json:"delta" validate:"required"`
	Type           string     `json:"type" validate:"required"`
	Observation    string     `json:"observation,omitempty"`
	DocumentNumber string     `json:"document_number,omitempty"`
}

// MovementResponse representación JSON de un movimiento del libro.
type MovementResponse struct {
	ID             string    `json:"id"`
	StockRecordID  string    `json:"stock_record_id"`
	ProductID      string    `json:"product_id"`
	WarehouseID    string    `json:"warehouse_id"`
	Lot            string    `json:"lot,omitempty"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Delta          int64     `json:"delta"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Observation    string    `json:"observation,omitempty"`
	DocumentNumber string    `json:"document_number,omitempty"`
	ActorID        string    `json:"actor_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMovementResponse mapea la entidad al DTO de respuesta.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		StockRecordID:  m.StockRecordID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		Lot:            m.Lot,
		Type:           string(m.Type),
		Category:       string(m.Type.Category()),
		Delta:          m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Observation:    m.Observation,
		DocumentNumber: m.DocumentNumber,
		ActorID:        m.ActorID,
		CreatedAt:      m.CreatedAt,
	}
}

// ValidateStockRequest body para POST /api/stock/validate.
type ValidateStockRequest struct {
	WarehouseID string                     `json:"warehouse_id,omitempty"`
	Requests    []ValidateStockRequestLine `json:"requests" validate:"required,min=1,dive"`
}

// ValidateStockRequestLine una línea producto/cantidad a verificar.
type ValidateStockRequestLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// ValidateStockResponse resultado de la validación de disponibilidad.
type ValidateStockResponse struct {
	Valid   bool                  `json:"valid"`
	Errors  []string              `json:"errors,omitempty"`
	Details []ValidateStockDetail `json:"details"`
}

// ValidateStockDetail detalle por línea.
type ValidateStockDetail struct {
	ProductID string `json:"product_id"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// ReverseDocumentRequest body para POST /api/documents/:docNumber/reverse.
type ReverseDocumentRequest struct {
	Lines []ReverseDocumentLine `json:"lines" validate:"required,min=1,dive"`
}

// ReverseDocumentLine cantidad (magnitud) a revertir por producto.
type ReverseDocumentLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}
