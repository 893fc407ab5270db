package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
)

// TestParseLegacyID heurística de forma para ids sin etiqueta: string no
// numérico => persistido; número pequeño => persistido (secuencial de DB);
// número sobre el umbral de 1e12 => token de sesión (epoch ms); vacío => cero.
func TestParseLegacyID(t *testing.T) {
	uuid := entity.ParseLegacyID("7f9c0a7e-aaaa-bbbb-cccc-000011112222")
	assert.True(t, uuid.IsPersisted())

	secuencial := entity.ParseLegacyID("4815")
	assert.True(t, secuencial.IsPersisted())

	sesion := entity.ParseLegacyID("1717243200123")
	assert.False(t, sesion.IsPersisted())
	ms, ok := sesion.Session()
	assert.True(t, ok)
	assert.Equal(t, int64(1717243200123), ms)

	vacio := entity.ParseLegacyID("")
	assert.True(t, vacio.IsZero())
	assert.False(t, vacio.IsPersisted())
}

// TestSessionIDSource_Monotonico el generador nunca repite token aunque el
// reloj no avance, y conserva el timestamp cuando sí avanza.
func TestSessionIDSource_Monotonico(t *testing.T) {
	var src entity.SessionIDSource
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	a := src.Next(now)
	b := src.Next(now) // mismo instante
	ta, _ := a.Session()
	tb, _ := b.Session()
	assert.Equal(t, now.UnixMilli(), ta)
	assert.Equal(t, ta+1, tb)

	c := src.Next(now.Add(5 * time.Second))
	tc, _ := c.Session()
	assert.Equal(t, now.Add(5*time.Second).UnixMilli(), tc)
}

// TestRecordID_String representación para logs y payloads.
func TestRecordID_String(t *testing.T) {
	assert.Equal(t, "db-1", entity.NewPersistedID("db-1").String())
	assert.Equal(t, "", entity.RecordID{}.String())

	s := entity.NewSessionID(time.UnixMilli(1717243200123))
	assert.Equal(t, "1717243200123", s.String())
}
