package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del registrador de movimientos: único camino de mutación del stock.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_EntradaCreaRegistroPerezoso(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	recorder := buildRecorder(db)

	mov, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       100,
		Type:        entity.MovementEntradaCompra,
		ActorID:     "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), mov.QuantityBefore, "el registro no existía: antes debe ser 0")
	assert.Equal(t, int64(100), mov.QuantityAfter)
	assert.Equal(t, int64(100), stockQty(db, "p1", "w1", ""),
		"la primera entrada debe crear el registro de stock con la cantidad del delta")
	require.Len(t, db.movements, 1)
	assert.Equal(t, mov.ID, db.movements[0].ID)
}

func TestRecord_SalidaDescuentaYAuditaAntesYDespues(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	seedStock(db, "p1", "w1", "", 100)
	recorder := buildRecorder(db)

	mov, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       -30,
		Type:        entity.MovementSalidaVenta,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), mov.QuantityBefore)
	assert.Equal(t, int64(70), mov.QuantityAfter)
	assert.Equal(t, int64(-30), mov.Quantity)
	assert.Equal(t, int64(70), stockQty(db, "p1", "w1", ""))
}

// El invariante central: ninguna mutación puede dejar cantidad negativa, y el
// rechazo no deja rastro ni en el stock ni en el libro.
func TestRecord_SalidaMayorQueDisponible_RechazaSinEfectos(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	seedStock(db, "p1", "w1", "", 20)
	recorder := buildRecorder(db)

	_, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       -50,
		Type:        entity.MovementSalidaVenta,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(50), insufficient.Requested)
	assert.Equal(t, int64(20), insufficient.Available)

	assert.Equal(t, int64(20), stockQty(db, "p1", "w1", ""), "la cantidad no debe cambiar")
	assert.Empty(t, db.movements, "un movimiento rechazado no se registra en el libro")
}

func TestRecord_SalidaSinRegistro_RechazaConDisponibleCero(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	recorder := buildRecorder(db)

	_, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       -1,
		Type:        entity.MovementSalidaVenta,
	})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
}

func TestRecord_SalidaACeroExacto_Permitida(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	seedStock(db, "p1", "w1", "", 30)
	recorder := buildRecorder(db)

	mov, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       -30,
		Type:        entity.MovementSalidaAjuste,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mov.QuantityAfter)
	assert.Equal(t, int64(0), stockQty(db, "p1", "w1", ""),
		"el registro en cero persiste como placeholder")
}

func TestRecord_ValidacionesDeEntrada(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	recorder := buildRecorder(db)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ledger.RecordInput
		want  error
	}{
		{
			name:  "delta cero",
			input: ledger.RecordInput{ProductID: "p1", WarehouseID: "w1", Delta: 0, Type: entity.MovementEntradaCompra},
			want:  domain.ErrInvalidInput,
		},
		{
			name:  "tipo desconocido",
			input: ledger.RecordInput{ProductID: "p1", WarehouseID: "w1", Delta: 5, Type: "entrada_magica"},
			want:  domain.ErrUnknownMovementType,
		},
		{
			name:  "signo no coincide con la dirección del tipo",
			input: ledger.RecordInput{ProductID: "p1", WarehouseID: "w1", Delta: -5, Type: entity.MovementEntradaCompra},
			want:  domain.ErrInvalidInput,
		},
		{
			name:  "producto inexistente",
			input: ledger.RecordInput{ProductID: "px", WarehouseID: "w1", Delta: 5, Type: entity.MovementEntradaCompra},
			want:  domain.ErrNotFound,
		},
		{
			name:  "bodega inexistente",
			input: ledger.RecordInput{ProductID: "p1", WarehouseID: "wx", Delta: 5, Type: entity.MovementEntradaCompra},
			want:  domain.ErrNoWarehouseAvailable,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recorder.Record(ctx, tc.input)
			assert.True(t, errors.Is(err, tc.want), "esperaba %v, obtuve %v", tc.want, err)
			assert.Empty(t, db.movements)
		})
	}
}

func TestRecord_BodegaInactiva_Rechaza(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", false)
	recorder := buildRecorder(db)

	_, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       10,
		Type:        entity.MovementEntradaCompra,
	})
	assert.ErrorIs(t, err, domain.ErrNoWarehouseAvailable)
}

func TestRecord_ProductoInactivo_Rechaza(t *testing.T) {
	db := newFakeDB()
	p := seedProduct(db, "p1", 0, 0)
	p.Active = false
	seedWarehouse(db, "w1", true)
	recorder := buildRecorder(db)

	_, err := recorder.Record(context.Background(), ledger.RecordInput{
		ProductID:   "p1",
		WarehouseID: "w1",
		Delta:       10,
		Type:        entity.MovementEntradaCompra,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Lotes separados del mismo producto en la misma bodega llevan registros
// independientes; el lote vacío es un registro más.
func TestRecord_LotesIndependientes(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	recorder := buildRecorder(db)
	ctx := context.Background()

	for _, in := range []ledger.RecordInput{
		{ProductID: "p1", WarehouseID: "w1", Lot: "L1", Delta: 10, Type: entity.MovementEntradaCompra},
		{ProductID: "p1", WarehouseID: "w1", Lot: "L2", Delta: 20, Type: entity.MovementEntradaCompra},
		{ProductID: "p1", WarehouseID: "w1", Delta: 5, Type: entity.MovementEntradaAjuste},
	} {
		_, err := recorder.Record(ctx, in)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(10), stockQty(db, "p1", "w1", "L1"))
	assert.Equal(t, int64(20), stockQty(db, "p1", "w1", "L2"))
	assert.Equal(t, int64(5), stockQty(db, "p1", "w1", ""))

	total, err := (&fakeStockRepo{db: db}).TotalQuantity(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(35), total)
}

// Secuencia de auditoría: el libro encadena antes/después sin huecos.
func TestRecord_LibroEncadenaCantidades(t *testing.T) {
	db := newFakeDB()
	seedProduct(db, "p1", 0, 0)
	seedWarehouse(db, "w1", true)
	recorder := buildRecorder(db)
	ctx := context.Background()

	inputs := []ledger.RecordInput{
		{ProductID: "p1", WarehouseID: "w1", Delta: 100, Type: entity.MovementEntradaCompra},
		{ProductID: "p1", WarehouseID: "w1", Delta: -30, Type: entity.MovementSalidaVenta},
		{ProductID: "p1", WarehouseID: "w1", Delta: -20, Type: entity.MovementSalidaMerma},
		{ProductID: "p1", WarehouseID: "w1", Delta: 15, Type: entity.MovementEntradaDevolucion},
	}
	for _, in := range inputs {
		_, err := recorder.Record(ctx, in)
		require.NoError(t, err)
	}

	require.Len(t, db.movements, 4)
	var prev int64
	for i, m := range db.movements {
		assert.Equal(t, prev, m.QuantityBefore, "movimiento %d debe partir de donde quedó el anterior", i)
		assert.Equal(t, m.QuantityBefore+m.Quantity, m.QuantityAfter)
		prev = m.QuantityAfter
	}
	assert.Equal(t, int64(65), stockQty(db, "p1", "w1", ""))
}
