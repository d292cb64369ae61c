package entity

import "time"

// MovementType es el conjunto cerrado de causas de un movimiento de stock.
// ENTRADA_* incrementa la cantidad, SALIDA_* la reduce.
type MovementType string

const (
	MovementEntradaCompra              MovementType = "entrada_compra"
	MovementEntradaAjuste              MovementType = "entrada_ajuste"
	MovementEntradaDevolucion          MovementType = "entrada_devolucion"
	MovementEntradaTraslado            MovementType = "entrada_traslado"
	MovementEntradaCancelacionEnvio    MovementType = "entrada_cancelacion_envio"
	MovementEntradaCancelacionTraslado MovementType = "entrada_cancelacion_traslado"
	MovementSalidaVenta                MovementType = "salida_venta"
	MovementSalidaEnvio                MovementType = "salida_envio"
	MovementSalidaAjuste               MovementType = "salida_ajuste"
	MovementSalidaMerma                MovementType = "salida_merma"
	MovementSalidaTraslado             MovementType = "salida_traslado"
)

// MovementCategory agrupa los tipos en tres categorías gruesas para reportes.
type MovementCategory string

const (
	CategoryEntrada MovementCategory = "entrada"
	CategorySalida  MovementCategory = "salida"
	CategoryAjuste  MovementCategory = "ajuste"
)

// IsValid reporta si el código pertenece al conjunto cerrado.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementEntradaCompra, MovementEntradaAjuste, MovementEntradaDevolucion,
		MovementEntradaTraslado, MovementEntradaCancelacionEnvio, MovementEntradaCancelacionTraslado,
		MovementSalidaVenta, MovementSalidaEnvio, MovementSalidaAjuste,
		MovementSalidaMerma, MovementSalidaTraslado:
		return true
	}
	return false
}

// Direction devuelve +1 para entradas y -1 para salidas. Función total sobre
// el conjunto cerrado (switch explícito, no comparación de prefijos); 0 para
// códigos desconocidos, que el registrador rechaza antes de llegar aquí.
func (t MovementType) Direction() int64 {
	switch t {
	case MovementEntradaCompra, MovementEntradaAjuste, MovementEntradaDevolucion,
		MovementEntradaTraslado, MovementEntradaCancelacionEnvio, MovementEntradaCancelacionTraslado:
		return 1
	case MovementSalidaVenta, MovementSalidaEnvio, MovementSalidaAjuste,
		MovementSalidaMerma, MovementSalidaTraslado:
		return -1
	}
	return 0
}

// Category clasifica el tipo en {entrada, salida, ajuste} para reportes.
func (t MovementType) Category() MovementCategory {
	switch t {
	case MovementEntradaAjuste, MovementSalidaAjuste:
		return CategoryAjuste
	}
	if t.Direction() > 0 {
		return CategoryEntrada
	}
	return CategorySalida
}

// Reverse devuelve el tipo compensatorio usado al revertir un documento.
// Las salidas se compensan con la entrada de cancelación específica cuando
// existe, y con entrada_ajuste en el caso general; las entradas con salida_ajuste.
func (t MovementType) Reverse() MovementType {
	switch t {
	case MovementSalidaEnvio:
		return MovementEntradaCancelacionEnvio
	case MovementSalidaTraslado:
		return MovementEntradaCancelacionTraslado
	case MovementSalidaVenta, MovementSalidaAjuste, MovementSalidaMerma:
		return MovementEntradaAjuste
	}
	return MovementSalidaAjuste
}

// Movement es la entrada inmutable de auditoría de un cambio de cantidad.
// Se crea una vez y nunca se actualiza ni se borra.
// Invariantes: QuantityAfter = QuantityBefore + Quantity y QuantityAfter >= 0.
type Movement struct {
	ID             string
	StockRecordID  string
	ProductID      string
	WarehouseID    string
	Lot            string
	Type           MovementType
	Quantity       int64 // delta con signo, nunca cero
	QuantityBefore int64
	QuantityAfter  int64
	Observation    string
	DocumentNumber string // número de documento externo (factura, orden, traslado)
	ActorID        string // usuario que originó el movimiento
	CreatedAt      time.Time
}
