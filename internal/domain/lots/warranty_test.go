package lots_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/lotes-api/internal/domain/lots"
)

// TestWarrantyEnd_DoceMeses caso típico: 12 meses desde 2024-01-01 => 2025-01-01.
func TestWarrantyEnd_DoceMeses(t *testing.T) {
	end := lots.WarrantyEnd(datePtr(2024, 1, 1), 12)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *end)
}

// TestWarrantyEnd_AjusteFinDeMes 31-ene + 1 mes cae al último día de febrero
// (ajuste calendario, no normalización al 2/3 de marzo).
func TestWarrantyEnd_AjusteFinDeMes(t *testing.T) {
	bisiesto := lots.WarrantyEnd(datePtr(2024, 1, 31), 1)
	require.NotNil(t, bisiesto)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *bisiesto)

	noBisiesto := lots.WarrantyEnd(datePtr(2023, 1, 31), 1)
	require.NotNil(t, noBisiesto)
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), *noBisiesto)
}

// TestWarrantyEnd_CruceDeAnio los meses desbordan el año correctamente.
func TestWarrantyEnd_CruceDeAnio(t *testing.T) {
	end := lots.WarrantyEnd(datePtr(2024, 11, 15), 3)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), *end)
}

// TestWarrantyEnd_SinInicio sin fecha de inicio no hay fecha de fin.
func TestWarrantyEnd_SinInicio(t *testing.T) {
	assert.Nil(t, lots.WarrantyEnd(nil, 12))
}

// TestWarrantyEnd_Idempotente recomputar la derivación sobre el valor
// almacenado reproduce siempre el mismo resultado.
func TestWarrantyEnd_Idempotente(t *testing.T) {
	start := datePtr(2024, 3, 31)
	a := lots.WarrantyEnd(start, 6)
	b := lots.WarrantyEnd(start, 6)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.True(t, a.Equal(*b))
}

// TestClassifyWarranty escenario de referencia: garantía 2024-01-01 + 12 meses,
// activa a mitad de 2024 y vencida a mitad de 2025.
func TestClassifyWarranty(t *testing.T) {
	end := lots.WarrantyEnd(datePtr(2024, 1, 1), 12)
	require.NotNil(t, end)

	assert.Equal(t, lots.WarrantyActive, lots.ClassifyWarranty(end, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, lots.WarrantyExpired, lots.ClassifyWarranty(end, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, lots.WarrantyActive, lots.ClassifyWarranty(nil, nowRef))
}
