package dto

import (
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	OriginWarehouseID      string              `json:"origin_warehouse_id" validate:"required"`
	DestinationWarehouseID string              `json:"destination_warehouse_id" validate:"required,nefield=OriginWarehouseID"`
	Vehicle                string              `json:"vehicle,omitempty"`
	Driver                 string              `json:"driver,omitempty"`
	Lines                  []TransferLineInput `json:"lines" validate:"required,min=1,dive"`
}

// TransferLineInput línea solicitada al crear o editar un traslado.
type TransferLineInput struct {
	ProductID  string     `json:"product_id" validate:"required"`
	Quantity   int64      `json:"quantity" validate:"required,gt=0"`
	Lot        string     `json:"lot,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty"`
}

// CancelTransferRequest body para POST /api/transfers/:id/cancel.
type CancelTransferRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// EditTransferLinesRequest body para PUT /api/transfers/:id/lines.
type EditTransferLinesRequest struct {
	Lines []TransferLineInput `json:"lines" validate:"required,min=1,dive"`
}

// TransferLineResponse línea de un traslado en respuestas.
type TransferLineResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	RequestedQty int64      `json:"requested_qty"`
	SentQty      int64      `json:"sent_qty"`
	ReceivedQty  int64      `json:"received_qty"`
	Lot          string     `json:"lot,omitempty"`
	Expiration   *time.Time `json:"expiration,omitempty"`
}

// TransferResponse representación JSON de un traslado.
type TransferResponse struct {
	ID                     string                 `json:"id"`
	Number                 int64                  `json:"number"`
	DocumentNumber         string                 `json:"document_number"`
	OriginWarehouseID      string                 `json:"origin_warehouse_id"`
	DestinationWarehouseID string                 `json:"destination_warehouse_id"`
	Status                 string                 `json:"status"`
	Vehicle                string                 `json:"vehicle,omitempty"`
	Driver                 string                 `json:"driver,omitempty"`
	CancelReason           string                 `json:"cancel_reason,omitempty"`
	TotalLines             int                    `json:"total_lines"`
	TotalQuantity          int64                  `json:"total_quantity"`
	CreatedAt              time.Time              `json:"created_at"`
	SentAt                 *time.Time             `json:"sent_at,omitempty"`
	ReceivedAt             *time.Time             `json:"received_at,omitempty"`
	Lines                  []TransferLineResponse `json:"lines"`
}

// NewTransferResponse mapea la entidad al DTO de respuesta.
func NewTransferResponse(t *entity.Transfer) TransferResponse {
	lines := make([]TransferLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, TransferLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			RequestedQty: l.RequestedQty,
			SentQty:      l.SentQty,
			ReceivedQty:  l.ReceivedQty,
			Lot:          l.Lot,
			Expiration:   l.Expiration,
		})
	}
	return TransferResponse{
		ID:                     t.ID,
		Number:                 t.Number,
		DocumentNumber:         t.DocumentNumber(),
		OriginWarehouseID:      t.OriginWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		Status:                 string(t.Status),
		Vehicle:                t.Vehicle,
		Driver:                 t.Driver,
		CancelReason:           t.CancelReason,
		TotalLines:             t.TotalLines,
		TotalQuantity:          t.TotalQuantity,
		CreatedAt:              t.CreatedAt,
		SentAt:                 t.SentAt,
		ReceivedAt:             t.ReceivedAt,
		Lines:                  lines,
	}
}
