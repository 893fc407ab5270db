package lots_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	applots "github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	domlots "github.com/tu-usuario/lotes-api/internal/domain/lots"
)

func electronicsProduct() entity.Product {
	return entity.Product{ID: "prod-3", SKU: "TV-55-UHD", Category: "electronics", WarrantyMonths: 24}
}

func newSerialRegister(t *testing.T, initial []entity.SerialUnit, capture *[]entity.SerialUnit) *applots.SerialRegister {
	t.Helper()
	var onChange applots.SerialChangeFunc
	if capture != nil {
		onChange = func(list []entity.SerialUnit) { *capture = list }
	}
	policy := entity.DefaultCategoryPolicies().Lookup("electronics")
	return applots.NewSerialRegister(electronicsProduct(), policy, initial, onChange, fixedClock)
}

// TestSerialAdd_DerivaGarantia escenario de referencia 5: serial "sn-1" con
// garantía 2024-01-01 + 12 meses => fin 2025-01-01; activa a mitad de 2024,
// vencida a mitad de 2025.
func TestSerialAdd_DerivaGarantia(t *testing.T) {
	r := newSerialRegister(t, nil, nil)

	u, err := r.Add(applots.SerialDraft{
		SerialNumber:      "sn-1",
		WarrantyStartDate: datePtr(2024, 1, 1),
		WarrantyMonths:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, "SN-1", u.SerialNumber)
	assert.Equal(t, entity.SerialStatusAvailable, u.Status)
	require.NotNil(t, u.WarrantyEndDate)
	assert.True(t, u.WarrantyEndDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, domlots.WarrantyActive, r.ClassifyWarranty(u, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, domlots.WarrantyExpired, r.ClassifyWarranty(u, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

// TestSerialAdd_DuplicadoCaseInsensitive "SN-1" contra "sn-1" existente =>
// DUPLICATE_IDENTIFIER.
func TestSerialAdd_DuplicadoCaseInsensitive(t *testing.T) {
	r := newSerialRegister(t, nil, nil)
	_, err := r.Add(applots.SerialDraft{SerialNumber: "sn-1"})
	require.NoError(t, err)

	_, err = r.Add(applots.SerialDraft{SerialNumber: "SN-1"})
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectDuplicateIdentifier, rej.Kind)
	assert.Len(t, r.List(), 1)
}

// TestSerialAdd_SerialVacio identificador vacío => EMPTY_IDENTIFIER.
func TestSerialAdd_SerialVacio(t *testing.T) {
	r := newSerialRegister(t, nil, nil)
	_, err := r.Add(applots.SerialDraft{SerialNumber: "  "})
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectEmptyIdentifier, rej.Kind)
}

// TestSerialDraft_GarantiaSembrada la duración de garantía del borrador se
// siembra del producto (24 meses) y persiste como default entre altas; el
// número de serie se limpia.
func TestSerialDraft_GarantiaSembrada(t *testing.T) {
	r := newSerialRegister(t, nil, nil)
	assert.Equal(t, 24, r.Draft().WarrantyMonths)

	_, err := r.Add(applots.SerialDraft{
		SerialNumber:      "SN-9",
		PurchaseDate:      datePtr(2024, 2, 1),
		WarrantyStartDate: datePtr(2024, 2, 1),
		WarrantyMonths:    18,
	})
	require.NoError(t, err)

	d := r.Draft()
	assert.Empty(t, d.SerialNumber)
	assert.Equal(t, 18, d.WarrantyMonths, "la duración recién usada queda pegajosa")
	require.NotNil(t, d.PurchaseDate)
	assert.True(t, d.PurchaseDate.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

// TestSerialRemove_PersistidoRechazado escenario 6: Remove sobre una unidad
// con id de base de datos es rechazado y la lista queda idéntica; una unidad
// de sesión sí se elimina.
func TestSerialRemove_PersistidoRechazado(t *testing.T) {
	persistida := entity.SerialUnit{
		ID:           entity.NewPersistedID("abc-persisted-uuid"),
		SerialNumber: "SN-DB",
		Status:       entity.SerialStatusAvailable,
	}
	var emitted []entity.SerialUnit
	r := newSerialRegister(t, []entity.SerialUnit{persistida}, &emitted)

	err := r.Remove(persistida.ID)
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectPersistedImmutable, rej.Kind)
	assert.Len(t, r.List(), 1, "la lista no cambia")
	assert.Nil(t, emitted, "un rechazo no emite onChange")

	local, err := r.Add(applots.SerialDraft{SerialNumber: "SN-LOCAL"})
	require.NoError(t, err)
	require.NoError(t, r.Remove(local.ID))
	assert.Len(t, r.List(), 1)
}

// TestSerialStats total, disponibles y en garantía respecto al reloj fijo
// (2024-02-15): una garantía vigente hasta 2025 cuenta, una vencida en 2023 no.
func TestSerialStats(t *testing.T) {
	r := newSerialRegister(t, nil, nil)

	_, err := r.Add(applots.SerialDraft{SerialNumber: "SN-A", WarrantyStartDate: datePtr(2024, 1, 1), WarrantyMonths: 12})
	require.NoError(t, err)
	_, err = r.Add(applots.SerialDraft{SerialNumber: "SN-B", WarrantyStartDate: datePtr(2022, 1, 1), WarrantyMonths: 12})
	require.NoError(t, err)
	_, err = r.Add(applots.SerialDraft{SerialNumber: "SN-C"})
	require.NoError(t, err)

	st := r.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 3, st.Available)
	assert.Equal(t, 1, st.InWarranty, "solo SN-A tiene garantía vigente; SN-C no tiene ventana")
}

// TestSerialIDs_SesionMonotonica dos altas en el mismo milisegundo del reloj
// fijo reciben tokens de sesión distintos y crecientes.
func TestSerialIDs_SesionMonotonica(t *testing.T) {
	r := newSerialRegister(t, nil, nil)
	a, err := r.Add(applots.SerialDraft{SerialNumber: "SN-1"})
	require.NoError(t, err)
	b, err := r.Add(applots.SerialDraft{SerialNumber: "SN-2"})
	require.NoError(t, err)

	ta, _ := a.ID.Session()
	tb, _ := b.ID.Session()
	assert.Greater(t, tb, ta)
}
