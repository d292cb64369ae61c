package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidState         = errors.New("transición de estado no permitida")
	ErrNoWarehouseAvailable = errors.New("no hay bodega activa disponible")
	ErrValidationFailed     = errors.New("validación de stock fallida")
	ErrConcurrencyConflict  = errors.New("conflicto de concurrencia sobre el registro de stock")
	ErrUnknownMovementType  = errors.New("tipo de movimiento desconocido")
)

// InsufficientStockError lleva el detalle necesario para un mensaje accionable:
// producto, cantidad solicitada y cantidad disponible al momento del rechazo.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s: solicitado %d, disponible %d",
		e.ProductID, e.WarehouseID, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError describe una transición rechazada del workflow de traslados.
type InvalidStateError struct {
	Current   string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("transición %q no permitida desde el estado %q", e.Attempted, e.Current)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }
