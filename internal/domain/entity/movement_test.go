package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// Todos los códigos del conjunto cerrado, para verificar totalidad de las
// funciones sobre el tipo.
var allMovementTypes = []entity.MovementType{
	entity.MovementEntradaCompra,
	entity.MovementEntradaAjuste,
	entity.MovementEntradaDevolucion,
	entity.MovementEntradaTraslado,
	entity.MovementEntradaCancelacionEnvio,
	entity.MovementEntradaCancelacionTraslado,
	entity.MovementSalidaVenta,
	entity.MovementSalidaEnvio,
	entity.MovementSalidaAjuste,
	entity.MovementSalidaMerma,
	entity.MovementSalidaTraslado,
}

func TestMovementType_IsValid(t *testing.T) {
	for _, mt := range allMovementTypes {
		assert.True(t, mt.IsValid(), "%s debe ser válido", mt)
	}
	for _, bad := range []entity.MovementType{"", "entrada", "salida_regalo", "ENTRADA_COMPRA"} {
		assert.False(t, bad.IsValid(), "%q no pertenece al conjunto cerrado", bad)
	}
}

// Direction es total sobre el conjunto cerrado: nunca 0 para un código válido.
func TestMovementType_DirectionTotal(t *testing.T) {
	for _, mt := range allMovementTypes {
		dir := mt.Direction()
		assert.Contains(t, []int64{1, -1}, dir, "%s debe tener dirección definida", mt)
	}
	assert.Equal(t, int64(1), entity.MovementEntradaCompra.Direction())
	assert.Equal(t, int64(-1), entity.MovementSalidaVenta.Direction())
	assert.Equal(t, int64(0), entity.MovementType("desconocido").Direction())
}

func TestMovementType_Category(t *testing.T) {
	assert.Equal(t, entity.CategoryAjuste, entity.MovementEntradaAjuste.Category())
	assert.Equal(t, entity.CategoryAjuste, entity.MovementSalidaAjuste.Category())
	assert.Equal(t, entity.CategoryEntrada, entity.MovementEntradaCompra.Category())
	assert.Equal(t, entity.CategoryEntrada, entity.MovementEntradaCancelacionTraslado.Category())
	assert.Equal(t, entity.CategorySalida, entity.MovementSalidaMerma.Category())
}

// El tipo compensatorio siempre invierte la dirección.
func TestMovementType_ReverseInvierteDireccion(t *testing.T) {
	for _, mt := range allMovementTypes {
		rev := mt.Reverse()
		assert.True(t, rev.IsValid(), "la reversa de %s debe ser un código válido", mt)
		assert.Equal(t, -mt.Direction(), rev.Direction(),
			"la reversa de %s debe invertir la dirección", mt)
	}
	assert.Equal(t, entity.MovementEntradaCancelacionEnvio, entity.MovementSalidaEnvio.Reverse())
	assert.Equal(t, entity.MovementEntradaCancelacionTraslado, entity.MovementSalidaTraslado.Reverse())
	assert.Equal(t, entity.MovementEntradaAjuste, entity.MovementSalidaVenta.Reverse())
	assert.Equal(t, entity.MovementSalidaAjuste, entity.MovementEntradaCompra.Reverse())
}
