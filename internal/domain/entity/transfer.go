package entity

import (
	"fmt"
	"time"
)

// TransferStatus es el estado del documento de traslado entre bodegas.
type TransferStatus string

const (
	TransferBorrador  TransferStatus = "borrador"
	TransferEnviado   TransferStatus = "enviado"
	TransferRecibido  TransferStatus = "recibido"  // terminal
	TransferCancelado TransferStatus = "cancelado" // terminal
)

// CanSend reporta si el traslado admite la transición "enviar".
func (s TransferStatus) CanSend() bool { return s == TransferBorrador }

// CanReceive reporta si el traslado admite la transición "recibir".
func (s TransferStatus) CanReceive() bool { return s == TransferEnviado }

// CanCancel reporta si el traslado admite la transición "cancelar".
func (s TransferStatus) CanCancel() bool {
	return s == TransferBorrador || s == TransferEnviado
}

// CanEdit reporta si las líneas pueden reemplazarse (solo en borrador).
func (s TransferStatus) CanEdit() bool { return s == TransferBorrador }

// Transfer coordina el movimiento de N líneas de producto entre exactamente
// dos bodegas mediante el workflow enviar/recibir/cancelar. Las líneas son
// inmutables fuera de borrador salvo las cantidades enviada/recibida, que
// escribe únicamente la transición correspondiente.
type Transfer struct {
	ID                     string
	Number                 int64 // consecutivo
	OriginWarehouseID      string
	DestinationWarehouseID string
	Status                 TransferStatus
	Vehicle                string
	Driver                 string
	CancelReason           string
	TotalLines             int
	TotalQuantity          int64
	CreatedBy              string
	CreatedAt              time.Time
	SentAt                 *time.Time
	ReceivedAt             *time.Time
	Lines                  []*TransferLine
}

// DocumentNumber devuelve el número de documento con que los movimientos del
// traslado quedan ligados en el libro (TRS-<consecutivo>).
func (t *Transfer) DocumentNumber() string {
	return fmt.Sprintf("TRS-%06d", t.Number)
}

// TransferLine es una línea de producto dentro de un traslado.
type TransferLine struct {
	ID           string
	TransferID   string
	ProductID    string
	RequestedQty int64
	SentQty      int64
	ReceivedQty  int64
	Lot          string
	Expiration   *time.Time
}
