package lots_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	applots "github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
)

// Reloj fijo para toda la batería: 2024-02-15 10:00 UTC.
var testNow = time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func testProduct() entity.Product {
	return entity.Product{
		ID:        "prod-1",
		SKU:       "PARA-500MG",
		Category:  "pharma",
		CostPrice: decimal.NewFromInt(12),
		Price:     decimal.NewFromInt(18),
	}
}

func pharmaPolicy() entity.CategoryPolicy {
	return entity.DefaultCategoryPolicies().Lookup("pharma")
}

func newBatchRegister(t *testing.T, initial []entity.Batch, capture *[]entity.Batch) *applots.BatchRegister {
	t.Helper()
	var onChange applots.BatchChangeFunc
	if capture != nil {
		onChange = func(list []entity.Batch) { *capture = list }
	}
	return applots.NewBatchRegister(testProduct(), pharmaPolicy(), initial, onChange, fixedClock)
}

// TestBatchAdd_Acepta escenario de referencia 1: alta válida, cantidad 10,
// fechas coherentes => aceptada con status active, número normalizado y
// stats().TotalQuantity == 10.
func TestBatchAdd_Acepta(t *testing.T) {
	var emitted []entity.Batch
	r := newBatchRegister(t, nil, &emitted)

	b, err := r.Add(applots.BatchDraft{
		BatchNumber:       "b-001",
		Quantity:          qty(10),
		ManufacturingDate: datePtr(2024, 1, 1),
		ExpiryDate:        datePtr(2024, 6, 1),
		CostPrice:         decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "B-001", b.BatchNumber)
	assert.Equal(t, entity.BatchStatusActive, b.Status)
	assert.False(t, b.ID.IsPersisted(), "un alta de sesión lleva id de sesión")

	assert.Len(t, emitted, 1, "onChange debe recibir la lista completa")
	assert.True(t, r.Stats().TotalQuantity.Equal(qty(10)))
}

// TestBatchAdd_DuplicadoCaseInsensitive escenario 2: "b-001" contra "B-001"
// existente => DUPLICATE_IDENTIFIER y el registro queda intacto.
func TestBatchAdd_DuplicadoCaseInsensitive(t *testing.T) {
	r := newBatchRegister(t, nil, nil)
	_, err := r.Add(applots.BatchDraft{BatchNumber: "B-001", Quantity: qty(10), ExpiryDate: datePtr(2024, 6, 1)})
	require.NoError(t, err)

	_, err = r.Add(applots.BatchDraft{BatchNumber: "b-001", Quantity: qty(5), ExpiryDate: datePtr(2024, 7, 1)})
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectDuplicateIdentifier, rej.Kind)
	assert.Len(t, r.List(), 1)
	assert.True(t, r.Stats().TotalQuantity.Equal(qty(10)), "un rechazo no altera los agregados")
}

// TestBatchAdd_OrdenDeFechas escenario 3: vencimiento anterior a fabricación
// => INVALID_DATE_ORDER.
func TestBatchAdd_OrdenDeFechas(t *testing.T) {
	r := newBatchRegister(t, nil, nil)
	_, err := r.Add(applots.BatchDraft{
		BatchNumber:       "B-002",
		Quantity:          qty(1),
		ManufacturingDate: datePtr(2024, 6, 1),
		ExpiryDate:        datePtr(2024, 1, 1),
	})
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectInvalidDateOrder, rej.Kind)
}

// TestBatchAdd_Rechazos casos restantes de validación: identificador vacío,
// cantidad no positiva, vencimiento faltante en categoría que lo exige.
func TestBatchAdd_Rechazos(t *testing.T) {
	r := newBatchRegister(t, nil, nil)

	_, err := r.Add(applots.BatchDraft{BatchNumber: "   ", Quantity: qty(1), ExpiryDate: datePtr(2024, 6, 1)})
	rej, _ := applots.AsRejection(err)
	require.NotNil(t, rej)
	assert.Equal(t, applots.RejectEmptyIdentifier, rej.Kind)

	_, err = r.Add(applots.BatchDraft{BatchNumber: "B-003", Quantity: qty(0), ExpiryDate: datePtr(2024, 6, 1)})
	rej, _ = applots.AsRejection(err)
	require.NotNil(t, rej)
	assert.Equal(t, applots.RejectNonPositiveQuantity, rej.Kind)

	// pharma exige vencimiento
	_, err = r.Add(applots.BatchDraft{BatchNumber: "B-003", Quantity: qty(1)})
	rej, _ = applots.AsRejection(err)
	require.NotNil(t, rej)
	assert.Equal(t, applots.RejectMissingExpiry, rej.Kind)
}

// TestBatchAdd_DefaultsPegajosos tras un alta aceptada, costo, MRP, ubicación
// y fechas quedan como defaults; número y cantidad se limpian.
func TestBatchAdd_DefaultsPegajosos(t *testing.T) {
	r := newBatchRegister(t, nil, nil)
	_, err := r.Add(applots.BatchDraft{
		BatchNumber:       "B-001",
		Quantity:          qty(10),
		ManufacturingDate: datePtr(2024, 1, 1),
		ExpiryDate:        datePtr(2024, 6, 1),
		CostPrice:         decimal.NewFromInt(12),
		MRP:               decimal.NewFromInt(18),
		Location:          "Estante A-3",
	})
	require.NoError(t, err)

	d := r.Draft()
	assert.Empty(t, d.BatchNumber)
	assert.True(t, d.Quantity.IsZero())
	assert.Equal(t, "Estante A-3", d.Location)
	assert.True(t, d.CostPrice.Equal(decimal.NewFromInt(12)))
	assert.True(t, d.MRP.Equal(decimal.NewFromInt(18)))
	require.NotNil(t, d.ExpiryDate)
	assert.True(t, d.ExpiryDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}

// TestBatchFEFO escenario 4: vencimientos 2024-03-01, 2024-01-01 y sin fecha
// => orden [2024-01-01, 2024-03-01, sin fecha].
func TestBatchFEFO(t *testing.T) {
	// Registro de categoría textil: permite lotes sin vencimiento.
	r := applots.NewBatchRegister(
		entity.Product{ID: "prod-2", SKU: "TEX-ROLLO", Category: "textile"},
		entity.DefaultCategoryPolicies().Lookup("textile"),
		nil, nil, fixedClock,
	)

	_, err := r.Add(applots.BatchDraft{BatchNumber: "MAR", Quantity: qty(1), ExpiryDate: datePtr(2024, 3, 1)})
	require.NoError(t, err)
	_, err = r.Add(applots.BatchDraft{BatchNumber: "ENE", Quantity: qty(1), ExpiryDate: datePtr(2024, 1, 1)})
	require.NoError(t, err)
	_, err = r.Add(applots.BatchDraft{BatchNumber: "SINFECHA", Quantity: qty(1)})
	require.NoError(t, err)

	orden := r.FEFOOrder()
	require.Len(t, orden, 3)
	assert.Equal(t, "ENE", orden[0].BatchNumber)
	assert.Equal(t, "MAR", orden[1].BatchNumber)
	assert.Equal(t, "SINFECHA", orden[2].BatchNumber, "sin vencimiento siempre al final")
}

// TestBatchStats conservación de cantidad, valoración, conteo de vencidos y
// próximo a vencer tras una secuencia de mutaciones.
func TestBatchStats(t *testing.T) {
	r := newBatchRegister(t, nil, nil)

	_, err := r.Add(applots.BatchDraft{BatchNumber: "VENCIDO", Quantity: qty(4), ExpiryDate: datePtr(2024, 1, 1), CostPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)
	b2, err := r.Add(applots.BatchDraft{BatchNumber: "PROXIMO", Quantity: qty(6), ExpiryDate: datePtr(2024, 3, 1), CostPrice: decimal.NewFromInt(20)})
	require.NoError(t, err)
	_, err = r.Add(applots.BatchDraft{BatchNumber: "LEJANO", Quantity: qty(2), ExpiryDate: datePtr(2025, 3, 1), CostPrice: decimal.NewFromInt(5)})
	require.NoError(t, err)

	st := r.Stats()
	assert.True(t, st.TotalQuantity.Equal(qty(12)))
	assert.True(t, st.TotalValue.Equal(decimal.NewFromInt(4*10+6*20+2*5)))
	assert.Equal(t, 1, st.ExpiredCount)
	require.NotNil(t, st.NextToExpire)
	assert.Equal(t, "PROXIMO", st.NextToExpire.BatchNumber)

	// Remove siempre procede para lotes, y los agregados se recomputan.
	require.NoError(t, r.Remove(b2.ID))
	st = r.Stats()
	assert.True(t, st.TotalQuantity.Equal(qty(6)))
	require.NotNil(t, st.NextToExpire)
	assert.Equal(t, "LEJANO", st.NextToExpire.BatchNumber)
}

// TestBatchSave_CantidadBloqueadaEnPersistidos un lote con id de base de datos
// admite cambios descriptivos pero rechaza el cambio de cantidad con
// PERSISTED_IMMUTABLE, dejando la cantidad original.
func TestBatchSave_CantidadBloqueadaEnPersistidos(t *testing.T) {
	persistido := entity.Batch{
		ID:          entity.NewPersistedID("7f9c0a7e-1111-2222-3333-444455556666"),
		BatchNumber: "B-DB",
		Quantity:    qty(50),
		ExpiryDate:  datePtr(2024, 12, 1),
		Location:    "Bodega 1",
		Status:      entity.BatchStatusActive,
	}
	r := newBatchRegister(t, []entity.Batch{persistido}, nil)

	d, quantityLocked, err := r.Edit(persistido.ID)
	require.NoError(t, err)
	assert.True(t, quantityLocked)

	// Cambio descriptivo: permitido.
	d.Location = "Bodega 2"
	require.NoError(t, r.Save(persistido.ID, d))
	assert.Equal(t, "Bodega 2", r.List()[0].Location)

	// Cambio de cantidad: rechazado, la lista conserva la cantidad original.
	d.Quantity = qty(99)
	err = r.Save(persistido.ID, d)
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectPersistedImmutable, rej.Kind)
	assert.True(t, r.List()[0].Quantity.Equal(qty(50)))
}

// TestBatchSave_DuplicadoExcluyeAlPropio re-guardar un lote con su propio
// número no dispara el chequeo de duplicados, pero chocar con otro sí.
func TestBatchSave_DuplicadoExcluyeAlPropio(t *testing.T) {
	r := newBatchRegister(t, nil, nil)
	a, err := r.Add(applots.BatchDraft{BatchNumber: "A-1", Quantity: qty(1), ExpiryDate: datePtr(2024, 6, 1)})
	require.NoError(t, err)
	_, err = r.Add(applots.BatchDraft{BatchNumber: "A-2", Quantity: qty(1), ExpiryDate: datePtr(2024, 6, 1)})
	require.NoError(t, err)

	d, _, err := r.Edit(a.ID)
	require.NoError(t, err)
	require.NoError(t, r.Save(a.ID, d), "guardar sin cambiar el número debe pasar")

	d.BatchNumber = "a-2"
	err = r.Save(a.ID, d)
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectDuplicateIdentifier, rej.Kind)
}

// TestBatchSuggestCode formato {prefijo}-B{AAMMDD}{seq}: prefijo del primer
// token del SKU, fecha del reloj, secuencia = conteo + 1.
func TestBatchSuggestCode(t *testing.T) {
	r := newBatchRegister(t, nil, nil)
	assert.Equal(t, "PARA-B240215001", r.SuggestCode())

	_, err := r.Add(applots.BatchDraft{BatchNumber: r.SuggestCode(), Quantity: qty(1), ExpiryDate: datePtr(2024, 6, 1)})
	require.NoError(t, err)
	assert.Equal(t, "PARA-B240215002", r.SuggestCode())

	// SKU sin token utilizable: cae al prefijo de la categoría.
	assert.Equal(t, "MED-B240215001", applots.SuggestBatchCode(0, "", "MED", testNow))
}

// TestBatchOnChange_SinAlias la lista entregada a onChange es una copia:
// mutarla no afecta el estado interno del registro.
func TestBatchOnChange_SinAlias(t *testing.T) {
	var emitted []entity.Batch
	r := newBatchRegister(t, nil, &emitted)
	_, err := r.Add(applots.BatchDraft{BatchNumber: "B-1", Quantity: qty(3), ExpiryDate: datePtr(2024, 6, 1)})
	require.NoError(t, err)

	emitted[0].BatchNumber = "MUTADO"
	assert.Equal(t, "B-1", r.List()[0].BatchNumber)
}
