package lots_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/lotes-api/internal/domain/lots"
)

// Fecha de referencia fija para todos los casos: 2024-06-01 00:00 UTC.
var nowRef = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// TestClassifyExpiry_SinFecha un lote sin vencimiento es "undated" (las
// categorías exentas, p.ej. textiles, no llevan fecha).
func TestClassifyExpiry_SinFecha(t *testing.T) {
	st := lots.ClassifyExpiry(nil, nowRef)
	assert.Equal(t, lots.TierUndated, st.Tier)
	assert.Zero(t, st.DaysRemaining)
}

// TestClassifyExpiry_Vencido fecha pasada => expired con días negativos.
func TestClassifyExpiry_Vencido(t *testing.T) {
	st := lots.ClassifyExpiry(datePtr(2024, 5, 1), nowRef)
	assert.Equal(t, lots.TierExpired, st.Tier)
	assert.Equal(t, -31, st.DaysRemaining)
}

// TestClassifyExpiry_VenceHoy día 0 cae dentro de la ventana expiring-soon,
// no en expired: todavía se puede vender hoy.
func TestClassifyExpiry_VenceHoy(t *testing.T) {
	st := lots.ClassifyExpiry(datePtr(2024, 6, 1), nowRef)
	assert.Equal(t, lots.TierExpiringSoon, st.Tier)
	assert.Equal(t, 0, st.DaysRemaining)
}

// TestClassifyExpiry_BordeVentana día 30 es expiring-soon, día 31 es healthy.
func TestClassifyExpiry_BordeVentana(t *testing.T) {
	dia30 := lots.ClassifyExpiry(datePtr(2024, 7, 1), nowRef)
	assert.Equal(t, lots.TierExpiringSoon, dia30.Tier)
	assert.Equal(t, 30, dia30.DaysRemaining)

	dia31 := lots.ClassifyExpiry(datePtr(2024, 7, 2), nowRef)
	assert.Equal(t, lots.TierHealthy, dia31.Tier)
	assert.Equal(t, 31, dia31.DaysRemaining)
}

// TestClassifyExpiry_RedondeoHaciaArriba una fracción de día cuenta como día
// completo (ceil): vencimiento a las 12:00 de mañana => 2 días restantes.
func TestClassifyExpiry_RedondeoHaciaArriba(t *testing.T) {
	d := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	st := lots.ClassifyExpiry(&d, nowRef)
	assert.Equal(t, 2, st.DaysRemaining)
}
